// Package grading converts raw exam and coursework points into discrete
// grades, pass/fail status and descriptions. Everything here is a pure
// function over integers; both the exam registration path and the progress
// aggregator go through this package so grade semantics stay identical
// everywhere.
package grading

// Point thresholds for each grade. Grades run 5 (fail) through 10.
const (
	threshold10 = 91
	threshold9  = 81
	threshold8  = 71
	threshold7  = 61
	threshold6  = 54
)

// MinPoints and MaxPoints bound the valid raw-point range. The policy
// functions are total over integers; callers must reject out-of-range input
// with a validation error before use.
const (
	MinPoints = 0
	MaxPoints = 100
)

// PassingGrade is the lowest grade that completes a subject.
const PassingGrade = 6

// descriptions maps each grade to its fixed label. The mapping is
// table-driven so no caller can re-derive an inconsistent cutoff.
var descriptions = map[int]string{
	10: "Izvanredan",
	9:  "Odličan",
	8:  "Vrlo dobar",
	7:  "Dobar",
	6:  "Dovoljan",
	5:  "Nedovoljan",
}

// ValidPoints reports whether points are within [MinPoints, MaxPoints].
func ValidPoints(points int) bool {
	return points >= MinPoints && points <= MaxPoints
}

// GradeFromPoints converts raw points into a grade on the 5-10 scale.
func GradeFromPoints(points int) int {
	switch {
	case points >= threshold10:
		return 10
	case points >= threshold9:
		return 9
	case points >= threshold8:
		return 8
	case points >= threshold7:
		return 7
	case points >= threshold6:
		return 6
	default:
		return 5
	}
}

// IsPassing reports whether the grade completes the subject.
func IsPassing(grade int) bool {
	return grade >= PassingGrade
}

// Description returns the fixed label for the grade derived from points.
func Description(points int) string {
	if label, ok := descriptions[GradeFromPoints(points)]; ok {
		return label
	}
	return descriptions[5]
}

// DescriptionForGrade returns the fixed label for an already-derived grade.
func DescriptionForGrade(grade int) string {
	if label, ok := descriptions[grade]; ok {
		return label
	}
	return descriptions[5]
}
