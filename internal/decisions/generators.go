package decisions

import (
	"fmt"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
)

func sure(label, desc, msg string, e state.Effect) state.Choice {
	return state.Choice{
		Label:         label,
		Description:   desc,
		SuccessChance: 1,
		OnSuccess:     state.Branch{Message: msg, Effect: e},
	}
}

func gamble(label, desc string, p float64, win, lose state.Branch) state.Choice {
	return state.Choice{
		Label:         label,
		Description:   desc,
		SuccessChance: p,
		OnSuccess:     win,
		OnFailure:     &lose,
	}
}

type levels = map[atlas.Sector]float64

func attack(enemy string) *state.WarOrder { return &state.WarOrder{Enemy: enemy, PlayerAttacker: true} }
func invaded(enemy string) *state.WarOrder { return &state.WarOrder{Enemy: enemy} }

func enemyDeclaresWar(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if len(s.Enemies) == 0 || s.GlobalReputation > 40 || s.MilitaryStrength > s.InitialStats.MilitaryStrength {
		return state.Decision{}, false
	}
	if !env.Chance(0.3) {
		return state.Decision{}, false
	}
	id := entropy.Pick(env.Rand, s.Enemies)
	enemy := atlas.Name(id)
	cost := s.Treasury * 0.20

	return state.Decision{
		Title: fmt.Sprintf("%s DECLARES WAR!", enemy),
		Description: fmt.Sprintf("%s has declared war on %s! Your reputation is low (%.0f) and they see you as weak. How do you respond?",
			enemy, s.Country.Name, s.GlobalReputation),
		Icon:    "war",
		Urgency: state.UrgencyCritical,
		Choices: []state.Choice{
			sure("Fight Back", "Declare war and defend your nation",
				fmt.Sprintf("You declared war on %s in self-defense!", enemy),
				state.Effect{War: attack(id), Treasury: -cost * 0.5, Happiness: -5}),
			sure(fmt.Sprintf("Pay %.1fB to Make a Deal", cost), "Pay tribute to avoid war",
				fmt.Sprintf("You paid %.1fB to %s to avoid war. Your people see this as weakness.", cost, enemy),
				state.Effect{Treasury: -cost, Happiness: -12, Reputation: -15}),
			gamble("Diplomatic Approach", "60% chance of success - negotiate peace", 0.6,
				state.Branch{
					Message: fmt.Sprintf("Diplomatic success! You negotiated peace with %s.", enemy),
					Effect:  state.Effect{Reputation: 10, Happiness: 5},
				},
				state.Branch{
					Message: fmt.Sprintf("Diplomacy failed! %s attacks anyway!", enemy),
					Effect:  state.Effect{War: invaded(id), Treasury: -cost, Happiness: -8, Reputation: -10},
				}),
			gamble("Ignore", "40% chance they back down", 0.4,
				state.Branch{
					Message: fmt.Sprintf("%s was bluffing and backed down. But your weakness is noted.", enemy),
					Effect:  state.Effect{Reputation: -5},
				},
				state.Branch{
					Message: fmt.Sprintf("%s attacks! You're caught completely unprepared!", enemy),
					Effect:  state.Effect{War: invaded(id), Military: -20, Treasury: -cost, Happiness: -15, GDPFactor: 0.90},
				}),
		},
	}, true
}

func aiBreakthrough(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if s.Sector(atlas.Education) < 40 || !env.Chance(0.4) {
		return state.Decision{}, false
	}
	cost := s.Treasury * 0.10

	return state.Decision{
		Title:       "AI TECHNOLOGY BREAKTHROUGH!",
		Description: "Your scientists have made a major breakthrough in artificial intelligence. It could revolutionize the economy, but there are concerns about jobs and ethics.",
		Icon:        "technology",
		Urgency:     state.UrgencyMedium,
		Choices: []state.Choice{
			sure(fmt.Sprintf("Support Research (%.1fB)", cost), "Boost GDP but increase unemployment",
				"AI research funded! The economy modernizes rapidly, but some workers are displaced.",
				state.Effect{Treasury: -cost, GDPFactor: 1.15, Unemployment: 3, Happiness: 5, Sectors: levels{atlas.Education: 10}}),
			sure("Ban AI Development", "Protect jobs but fall behind",
				"AI development banned. Workers protected, but the country falls behind technologically.",
				state.Effect{Happiness: 3, GDPGrowth: -0.5, Reputation: -5}),
			sure("Regulate Carefully", "Moderate both benefits and risks",
				"AI regulations implemented. Balanced growth with worker protections.",
				state.Effect{GDPFactor: 1.07, Unemployment: 1, Happiness: 2}),
		},
	}, true
}

func assassinationPlot(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if s.Sector(atlas.Security) > 50 || s.Happiness > 60 || !env.Chance(0.35) {
		return state.Decision{}, false
	}
	cost := s.Treasury * 0.10

	return state.Decision{
		Title:       "ASSASSINATION PLOT DISCOVERED!",
		Description: "Intelligence services have uncovered a plot against your life. Weak security and unhappy citizens have emboldened the conspirators.",
		Icon:        "danger",
		Urgency:     state.UrgencyCritical,
		Choices: []state.Choice{
			gamble("Ignore", "20% risk of losing everything", 0.80,
				state.Branch{
					Message: "False alarm! The plot was exaggerated. But your security is still weak.",
					Effect:  state.Effect{Happiness: -2},
				},
				state.Branch{
					Message: "YOU HAVE BEEN ASSASSINATED! Game over.",
					Effect:  state.Effect{Fatal: true},
				}),
			gamble(fmt.Sprintf("Launch Investigation (%.1fB)", cost), "Find and stop the conspirators", 0.85,
				state.Branch{
					Message: "Conspirators arrested! Security improved, though some innocents were caught in the dragnet.",
					Effect:  state.Effect{Treasury: -cost, Sectors: levels{atlas.Security: 15}, Happiness: -3},
				},
				state.Branch{
					Message: "Investigation failed! The conspirators remain at large.",
					Effect:  state.Effect{Treasury: -cost, Happiness: -8, Sectors: levels{atlas.Security: -5}},
				}),
			sure("Increase Security", "Boost security spending permanently",
				"Security forces strengthened! Plot thwarted. Citizens feel safer.",
				state.Effect{Sectors: levels{atlas.Security: 20}, Happiness: 5, Treasury: -cost * 1.5}),
		},
	}, true
}

func debtUltimatum(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if s.DebtToGDPRatio < 120 || !env.Chance(0.4) {
		return state.Decision{}, false
	}
	fine := s.GDP * 0.30

	return state.Decision{
		Title:       "DEBT CRISIS ULTIMATUM!",
		Description: fmt.Sprintf("Your debt-to-GDP ratio is %.0f%%. International creditors are threatening action.", s.DebtToGDPRatio),
		Icon:        "bank",
		Urgency:     state.UrgencyCritical,
		Choices: []state.Choice{
			sure("Raise Taxes", "Increase revenue but risk civil unrest",
				"Taxes raised! Revenue up but citizens are furious. Mass protests.",
				state.Effect{RevenueFactor: 1.5, Happiness: -20, Unemployment: 4}),
			gamble("Ignore Creditors", fmt.Sprintf("30%% chance of a %.0fB fine", fine), 0.70,
				state.Branch{
					Message: "Creditors backed down! You called their bluff, but your reputation suffers.",
					Effect:  state.Effect{Reputation: -20},
				},
				state.Branch{
					Message: fmt.Sprintf("Creditors imposed a massive %.0fB penalty! Economic disaster!", fine),
					Effect:  state.Effect{Treasury: -fine, GDPFactor: 0.85, Reputation: -30, Defaults: true},
				}),
			sure("Emergency Austerity", "Cut all spending to pay debt",
				"Austerity implemented. Debt reduced but public services suffer.",
				state.Effect{
					DebtFactor: 0.70,
					Happiness:  -15,
					Sectors:    levels{atlas.Health: -10, atlas.Education: -10, atlas.Infrastructure: -10},
				}),
		},
	}, true
}

func naturalDisaster(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if !env.Chance(0.3) {
		return state.Decision{}, false
	}
	relief, full := s.GDP*0.05, s.GDP*0.12

	return state.Decision{
		Title:       "NATURAL DISASTER STRIKES!",
		Description: "A devastating earthquake has hit the nation. Thousands are displaced and infrastructure is damaged. Your response will define your leadership.",
		Icon:        "disaster",
		Urgency:     state.UrgencyHigh,
		Choices: []state.Choice{
			sure(fmt.Sprintf("Full Relief (%.1fB)", full), "Comprehensive aid, expensive but saves lives",
				"Full relief deployed! Lives saved and infrastructure quickly rebuilt.",
				state.Effect{Treasury: -full, Happiness: 15, Sectors: levels{atlas.Infrastructure: -5}}),
			sure(fmt.Sprintf("Minimal Relief (%.1fB)", relief), "Basic aid only",
				"Minimal relief provided. Many are left to rebuild on their own. Resentment grows.",
				state.Effect{Treasury: -relief, Happiness: -10, Sectors: levels{atlas.Infrastructure: -15}}),
			gamble("Request International Aid", "70% chance of receiving help", 0.70,
				state.Branch{
					Message: "The international community sends aid! Your reputation improves.",
					Effect:  state.Effect{Happiness: 8, Reputation: 10, Sectors: levels{atlas.Infrastructure: -8}},
				},
				state.Branch{
					Message: "No help arrived! You look weak on the world stage.",
					Effect:  state.Effect{Happiness: -15, Reputation: -15, Sectors: levels{atlas.Infrastructure: -20}},
				}),
		},
	}, true
}

func tradeDealOffer(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if len(s.Allies) == 0 || !env.Chance(0.4) {
		return state.Decision{}, false
	}
	id := entropy.Pick(env.Rand, s.Allies)
	ally := atlas.Name(id)

	return state.Decision{
		Title:       fmt.Sprintf("%s TRADE DEAL OFFER", ally),
		Description: fmt.Sprintf("%s proposes a major trade agreement. It could boost the economy but hurt some domestic industries.", ally),
		Icon:        "trade",
		Urgency:     state.UrgencyMedium,
		Choices: []state.Choice{
			sure("Accept Deal", "+12% GDP but +2% unemployment",
				fmt.Sprintf("Trade deal with %s signed! The economy booms but some jobs are lost.", ally),
				state.Effect{GDPFactor: 1.12, Unemployment: 2, Reputation: 8}),
			sure("Reject Deal", "Protect domestic industry",
				"Deal rejected. Domestic industries protected but a growth opportunity missed.",
				state.Effect{Happiness: 3, GDPGrowth: -0.3}),
			gamble("Negotiate Better Terms", "50% chance of a better deal or nothing", 0.50,
				state.Branch{
					Message: "Negotiation success! A better deal with minimal job losses!",
					Effect:  state.Effect{GDPFactor: 1.15, Unemployment: 0.5, Reputation: 12},
				},
				state.Branch{
					Message: fmt.Sprintf("%s walked away, insulted. The alliance is over.", ally),
					Effect:  state.Effect{Reputation: -10, Relationships: map[string]float64{id: -30}},
				}),
		},
	}, true
}

func refugeeCrisis(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if !env.Chance(0.3) {
		return state.Decision{}, false
	}
	cost := s.GDP * 0.08

	return state.Decision{
		Title:       "REFUGEE CRISIS AT THE BORDER",
		Description: "100,000 refugees fleeing war and famine are at your border seeking asylum.",
		Icon:        "refugees",
		Urgency:     state.UrgencyHigh,
		Choices: []state.Choice{
			sure(fmt.Sprintf("Accept Refugees (%.1fB)", cost), "Provide asylum, expensive but moral",
				"Refugees welcomed! Global praise and short-term costs. The workforce grows.",
				state.Effect{Treasury: -cost, Reputation: 20, Happiness: -5, Unemployment: 1.5, GDPGrowth: 0.4}),
			sure("Close Borders", "Refuse entry",
				"Borders closed. International condemnation but domestic support.",
				state.Effect{Reputation: -25, Happiness: 8}),
			sure("Limited Asylum", "Accept the 20,000 most vulnerable",
				"Selective asylum granted. A compromise criticized by both sides.",
				state.Effect{Treasury: -cost * 0.25, Reputation: -5, Unemployment: 0.3}),
		},
	}, true
}

func corruptionScandal(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if s.Sector(atlas.Security) > 60 || !env.Chance(0.35) {
		return state.Decision{}, false
	}

	return state.Decision{
		Title:       "MAJOR CORRUPTION SCANDAL!",
		Description: "Evidence emerges that senior officials have been embezzling public funds. The public demands action.",
		Icon:        "scandal",
		Urgency:     state.UrgencyHigh,
		Choices: []state.Choice{
			sure("Full Investigation", "Prosecute everyone",
				"Corruption purge complete! Public trust restored, but powerful people now hate you.",
				state.Effect{Happiness: 12, Reputation: 15, Treasury: s.GDP * 0.05, Sectors: levels{atlas.Security: 10}}),
			gamble("Cover It Up", "60% chance of success", 0.60,
				state.Branch{
					Message: "Scandal buried. Your powerful friends are grateful.",
					Effect:  state.Effect{Reputation: -5},
				},
				state.Branch{
					Message: "Cover-up EXPOSED! People demand your resignation!",
					Effect:  state.Effect{Happiness: -30, Reputation: -40},
				}),
			sure("Scapegoat Low-Level Officials", "Blame underlings, protect the powerful",
				"Low-level officials prosecuted. Corruption continues but the public is satisfied for now.",
				state.Effect{Happiness: 3, Treasury: s.GDP * 0.01}),
		},
	}, true
}

func investmentBoom(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if s.GDPGrowthRate < 2 || !env.Chance(0.35) {
		return state.Decision{}, false
	}
	cost := s.Treasury * 0.25

	return state.Decision{
		Title:       "ONCE-IN-A-LIFETIME INVESTMENT!",
		Description: "Tech giants want to build facilities in your country. A large upfront cost for potentially massive long-term gains.",
		Icon:        "growth",
		Urgency:     state.UrgencyMedium,
		Choices: []state.Choice{
			gamble(fmt.Sprintf("Invest Big (%.1fB)", cost), "Huge risk, huge reward", 0.75,
				state.Branch{
					Message: "JACKPOT! The investment pays off massively!",
					Effect:  state.Effect{Treasury: -cost, GDPFactor: 1.30, GDPGrowth: 1.5, Unemployment: -5, Happiness: 15},
				},
				state.Branch{
					Message: "Investment FAILED! The companies pulled out. Massive losses.",
					Effect:  state.Effect{Treasury: -cost, Happiness: -12, Reputation: -10},
				}),
			sure("Pass", "Too risky",
				"Opportunity passed. Later you learn it would have made you rich.",
				state.Effect{Happiness: -5}),
		},
	}, true
}

func militaryCoup(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if s.MilitaryStrength > 60 || s.Happiness > 50 || !env.Chance(0.25) {
		return state.Decision{}, false
	}
	overthrown := func(msg string) state.Branch {
		return state.Branch{Message: msg, Effect: state.Effect{Fatal: true}}
	}

	return state.Decision{
		Title:       "MILITARY COUP ATTEMPT!",
		Description: "The generals are planning a coup. Your weak position has emboldened them. Act fast or lose power!",
		Icon:        "coup",
		Urgency:     state.UrgencyCritical,
		Choices: []state.Choice{
			gamble("Arrest Generals", "50% success, ends the threat", 0.50,
				state.Branch{
					Message: "Coup leaders arrested! The military is purged and rebuilt.",
					Effect:  state.Effect{Military: -30, Sectors: levels{atlas.Security: 20}, Happiness: 10},
				},
				overthrown("COUP SUCCESSFUL! You have been overthrown.")),
			gamble("Negotiate With Generals", "Give them concessions", 0.80,
				state.Branch{
					Message: "Generals appeased with bribes and promotions. You keep power, as their puppet.",
					Effect:  state.Effect{TreasuryFactor: 0.70, Military: 10, Happiness: -8},
				},
				overthrown("Negotiations failed! The coup proceeds.")),
			gamble("Rally Public Support", "60% success, the people against the army", 0.60,
				state.Branch{
					Message: "The public rallies behind you! The coup collapses.",
					Effect:  state.Effect{Happiness: 20, Military: -15, Reputation: 20},
				},
				overthrown("Public support was not enough. The military takes over.")),
		},
	}, true
}

func borderDispute(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if len(s.Enemies) == 0 || !env.Chance(0.35) {
		return state.Decision{}, false
	}
	id := entropy.Pick(env.Rand, s.Enemies)
	enemy := atlas.Name(id)

	return state.Decision{
		Title:       fmt.Sprintf("BORDER DISPUTE WITH %s", enemy),
		Description: fmt.Sprintf("%s claims your territory and has moved troops to the border. One wrong move could start a war.", enemy),
		Icon:        "border",
		Urgency:     state.UrgencyHigh,
		Choices: []state.Choice{
			gamble("Send Troops", "Show strength, 70% they back down", 0.70,
				state.Branch{
					Message: fmt.Sprintf("%s backed down! Your show of force worked.", enemy),
					Effect:  state.Effect{Reputation: 8, Military: 5},
				},
				state.Branch{
					Message: "Both sides opened fire! The conflict escalates into war!",
					Effect:  state.Effect{War: attack(id)},
				}),
			sure("Diplomatic Solution", "Negotiate and appear weak",
				"Border dispute resolved peacefully. You gave up a small territory.",
				state.Effect{GDPFactor: 0.97, Happiness: -8, Reputation: -5}),
		},
	}, true
}

func ethnicConflict(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if s.Happiness > 50 || !env.Chance(0.3) {
		return state.Decision{}, false
	}

	return state.Decision{
		Title:       "ETHNIC AND RELIGIOUS VIOLENCE!",
		Description: "Long-simmering tensions have erupted into violence between communities. You must act decisively.",
		Icon:        "violence",
		Urgency:     state.UrgencyCritical,
		Choices: []state.Choice{
			gamble("Deploy Military", "Martial law, restore order by force", 0.85,
				state.Branch{
					Message: "Military deployed. Order restored at a heavy cost.",
					Effect:  state.Effect{Happiness: -10, Sectors: levels{atlas.Security: 15}, Military: -10},
				},
				state.Branch{
					Message: "The intervention backfired! Violence spreads!",
					Effect:  state.Effect{Happiness: -25, GDPFactor: 0.90},
				}),
			gamble("Mediate Peace", "Bring community leaders together", 0.50,
				state.Branch{
					Message: "Peace talks succeed! Communities agree to reconciliation.",
					Effect:  state.Effect{Happiness: 10, Reputation: 15},
				},
				state.Branch{
					Message: "Mediation failed! The violence continues to spread.",
					Effect:  state.Effect{Happiness: -15, GDPFactor: 0.93},
				}),
		},
	}, true
}

func brainDrain(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if s.Sector(atlas.Education) > 50 || !env.Chance(0.35) {
		return state.Decision{}, false
	}
	cost := s.GDP * 0.06

	return state.Decision{
		Title:       "BRAIN DRAIN CRISIS!",
		Description: "Doctors, engineers and scientists are emigrating for better opportunities abroad.",
		Icon:        "education",
		Urgency:     state.UrgencyHigh,
		Choices: []state.Choice{
			gamble(fmt.Sprintf("Offer Incentives (%.1fB)", cost), "Pay people to stay", 0.75,
				state.Branch{
					Message: "Incentives work! Many skilled workers stay.",
					Effect:  state.Effect{Treasury: -cost, Sectors: levels{atlas.Education: 15}, GDPGrowth: 0.5},
				},
				state.Branch{
					Message: "The money was not enough. They leave anyway.",
					Effect:  state.Effect{Treasury: -cost, Happiness: -5},
				}),
			sure("Let Them Go", "Accept the loss",
				"The educated elite leaves. The country loses its best minds.",
				state.Effect{Sectors: levels{atlas.Education: -20}, GDPGrowth: -0.8, Unemployment: -1}),
		},
	}, true
}

func infrastructureFailure(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	decline := s.InitialStats.SectorLevels[atlas.Infrastructure] - s.Sector(atlas.Infrastructure)
	if decline < 15 || !env.Chance(0.4) {
		return state.Decision{}, false
	}
	cost := s.GDP * 0.15

	return state.Decision{
		Title:       "INFRASTRUCTURE COLLAPSE!",
		Description: "Neglected infrastructure has failed. Nationwide blackouts and failing water systems demand immediate action.",
		Icon:        "infrastructure",
		Urgency:     state.UrgencyCritical,
		Choices: []state.Choice{
			sure(fmt.Sprintf("Emergency Repairs (%.1fB)", cost), "Fix everything immediately",
				"Emergency repairs completed. Expensive but effective.",
				state.Effect{Treasury: -cost, Sectors: levels{atlas.Infrastructure: 25}, Happiness: 8}),
			sure("Gradual Repairs", "Cheaper, but citizens suffer longer",
				"Slow repairs underway. Weeks of blackouts breed deep resentment.",
				state.Effect{Treasury: -cost * 0.5, Sectors: levels{atlas.Infrastructure: 10}, Happiness: -12, GDPFactor: 0.95}),
			gamble("Request Foreign Help", "60% success, at the cost of sovereignty", 0.60,
				state.Branch{
					Message: "Foreign engineers fix your infrastructure. Humiliating but effective.",
					Effect:  state.Effect{Sectors: levels{atlas.Infrastructure: 30}, Reputation: -20, Happiness: -5},
				},
				state.Branch{
					Message: "No one helps! You look weak and incompetent.",
					Effect:  state.Effect{Happiness: -20, Reputation: -15},
				}),
		},
	}, true
}
