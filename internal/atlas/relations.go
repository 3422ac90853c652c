package atlas

import "slices"

type relation struct {
	allies  []string
	enemies []string
}

var initialRelations = map[string]relation{
	"usa":         {allies: []string{"uk", "france", "germany", "japan", "southkorea", "canada"}, enemies: []string{"russia", "china", "iran", "northkorea"}},
	"china":       {allies: []string{"russia", "iran", "northkorea", "pakistan"}, enemies: []string{"usa", "japan", "india", "southkorea"}},
	"russia":      {allies: []string{"china", "iran", "northkorea"}, enemies: []string{"usa", "uk", "france", "germany", "poland"}},
	"india":       {allies: []string{"usa", "france", "japan"}, enemies: []string{"china", "pakistan"}},
	"uk":          {allies: []string{"usa", "france", "germany", "canada", "australia"}, enemies: []string{"russia", "iran"}},
	"france":      {allies: []string{"uk", "germany", "usa", "india"}, enemies: []string{"russia"}},
	"germany":     {allies: []string{"france", "uk", "usa", "poland"}, enemies: []string{"russia"}},
	"japan":       {allies: []string{"usa", "southkorea", "india", "australia"}, enemies: []string{"china", "northkorea", "russia"}},
	"brazil":      {allies: []string{"argentina", "mexico"}},
	"mexico":      {allies: []string{"usa", "brazil"}},
	"southafrica": {allies: []string{"brazil", "india"}},
	"somalia":     {enemies: []string{"ethiopia", "kenya"}},
	"canada":      {allies: []string{"usa", "uk", "france"}, enemies: []string{"russia"}},
	"australia":   {allies: []string{"usa", "uk", "japan"}, enemies: []string{"china"}},
	"southkorea":  {allies: []string{"usa", "japan"}, enemies: []string{"northkorea", "china"}},
	"northkorea":  {allies: []string{"china", "russia"}, enemies: []string{"usa", "southkorea", "japan"}},
	"iran":        {allies: []string{"russia", "china"}, enemies: []string{"usa", "uk", "israel"}},
	"pakistan":    {allies: []string{"china"}, enemies: []string{"india"}},
	"poland":      {allies: []string{"usa", "uk", "germany", "france"}, enemies: []string{"russia"}},
	"argentina":   {allies: []string{"brazil", "chile"}, enemies: []string{"uk"}},
	"ethiopia":    {allies: []string{"usa"}, enemies: []string{"somalia", "eritrea"}},
	"kenya":       {allies: []string{"usa", "uk"}, enemies: []string{"somalia"}},
	"israel":      {allies: []string{"usa"}, enemies: []string{"iran", "syria", "lebanon"}},
}

// InitialRelations returns the allies and enemies id starts the game with.
func InitialRelations(id string) (allies, enemies []string) {
	r := initialRelations[id]
	return slices.Clone(r.allies), slices.Clone(r.enemies)
}
