// Package scoring turns mission attempts into scores and grades.
package scoring

import "math"

// Grade is a letter grade for a mission score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeFor maps a 0–100 total to a letter grade.
func GradeFor(total int) Grade {
	switch {
	case total >= 90:
		return GradeA
	case total >= 80:
		return GradeB
	case total >= 70:
		return GradeC
	case total >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// MissionScore breaks a mission result into its three components.
type MissionScore struct {
	Detection int
	Decision  int
	Reporting int
	Total     int
	Grade     Grade
}

func newScore(detection, decision, reporting int) MissionScore {
	total := detection + decision + reporting
	return MissionScore{
		Detection: detection,
		Decision:  decision,
		Reporting: reporting,
		Total:     total,
		Grade:     GradeFor(total),
	}
}

// Log-hunt component weights.
const (
	LogHuntDetectionPoints = 30
	LogHuntDecisionPoints  = 35
	LogHuntReportingPoints = 35
)

// LogHunt scores a log-analysis mission. The incident note earns full
// reporting points inside [minWords, maxWords] and partial credit for
// notes of at least 80% or 50% of minWords. Overlong notes fall into the
// 80% band.
func LogHunt(answerCorrect, mitigationCorrect bool, reportWords, minWords, maxWords int) MissionScore {
	detection := 0
	if answerCorrect {
		detection = LogHuntDetectionPoints
	}
	decision := 0
	if mitigationCorrect {
		decision = LogHuntDecisionPoints
	}

	words := float64(reportWords)
	floor := float64(minWords)
	reporting := 0
	switch {
	case reportWords >= minWords && reportWords <= maxWords:
		reporting = LogHuntReportingPoints
	case words >= floor*0.8:
		reporting = 25
	case words >= floor*0.5:
		reporting = 15
	}

	return newScore(detection, decision, reporting)
}

// ZoneBuilder scores a zone-assignment mission by placement accuracy,
// split 40/40/20. With no assets the accuracy is zero.
func ZoneBuilder(correctPlacements, totalAssets int) MissionScore {
	if totalAssets <= 0 {
		return newScore(0, 0, 0)
	}
	if correctPlacements < 0 {
		correctPlacements = 0
	}
	if correctPlacements > totalAssets {
		correctPlacements = totalAssets
	}
	accuracy := float64(correctPlacements) / float64(totalAssets)
	return newScore(
		int(math.Round(accuracy*40)),
		int(math.Round(accuracy*40)),
		int(math.Round(accuracy*20)),
	)
}
