// Package matchup builds a pairwise head-to-head report for two players.
package matchup

import (
	"math"

	"github.com/pable/botc-metrics/internal/model"
)

// Analyze compares two players across every game they both appeared in.
// Games split into a same-team bucket (with both-Good/both-Evil sub-buckets)
// and an opposite-team bucket with one side per player.
//
// The when-Good/when-Evil sub-buckets mirror the legacy report exactly: each
// player's bucket is derived from the other player's alignment, so B's
// when-Good games are the games where A was Evil.
func Analyze(games []model.GameRecord, playerA, playerB string) model.MatchupReport {
	r := model.MatchupReport{
		PlayerA: playerA,
		PlayerB: playerB,
		SideA:   model.MatchupSide{Name: playerA},
		SideB:   model.MatchupSide{Name: playerB},
	}

	// Opposite-team games partitioned by A's alignment.
	var aGood, aEvil []model.GameRecord

	for _, g := range games {
		pa, okA := g.Participant(playerA)
		pb, okB := g.Participant(playerB)
		if !okA || !okB {
			continue
		}
		r.TotalTogether++
		r.GameIDs = append(r.GameIDs, g.GameID)

		if pa.FinalTeam == pb.FinalTeam {
			r.SameTeam.Games++
			win := pa.FinalTeam == g.WinningTeam
			if win {
				r.SameTeam.Wins++
			}
			switch pa.FinalTeam {
			case model.TeamGood:
				r.BothGood.Games++
				if win {
					r.BothGood.Wins++
				}
			case model.TeamEvil:
				r.BothEvil.Games++
				if win {
					r.BothEvil.Wins++
				}
			}
			continue
		}

		r.OppositeGames++
		if pa.FinalTeam == model.TeamGood {
			aGood = append(aGood, g)
		} else {
			aEvil = append(aEvil, g)
		}
		if pa.FinalTeam == g.WinningTeam {
			r.SideA.Wins++
		}
		if pb.FinalTeam == g.WinningTeam {
			r.SideB.Wins++
		}
	}

	finishBucket(&r.SameTeam)
	finishBucket(&r.BothGood)
	finishBucket(&r.BothEvil)

	r.SideA.WhenGood = sideBucket(aGood, playerA)
	r.SideA.WhenEvil = sideBucket(aEvil, playerA)
	r.SideA.WinPct = pct1(r.SideA.Wins, r.OppositeGames)

	// B's alignment is the complement of A's in every opposite-team game.
	r.SideB.WhenGood = sideBucket(aEvil, playerB)
	r.SideB.WhenEvil = sideBucket(aGood, playerB)
	r.SideB.WinPct = pct1(r.SideB.Wins, r.OppositeGames)

	return r
}

// sideBucket tallies one player's wins over a pre-partitioned set of games.
func sideBucket(games []model.GameRecord, name string) model.MatchupBucket {
	b := model.MatchupBucket{Games: len(games)}
	for _, g := range games {
		p, ok := g.Participant(name)
		if ok && p.FinalTeam == g.WinningTeam {
			b.Wins++
		}
	}
	b.WinPct = pct1(b.Wins, b.Games)
	return b
}

func finishBucket(b *model.MatchupBucket) {
	b.WinPct = pct1(b.Wins, b.Games)
}

// pct1 is a percentage rounded to one decimal, 0.0 when the denominator is 0.
func pct1(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)/float64(den)*1000) / 10
}
