package grading

type ColorClass int

const (
	Excellent ColorClass = iota
	Good
	Satisfactory
	Sufficient
	Poor
	Insufficient
)

var colorClassNames = [...]string{
	Excellent:    "excellent",
	Good:         "good",
	Satisfactory: "satisfactory",
	Sufficient:   "sufficient",
	Poor:         "poor",
	Insufficient: "insufficient",
}

var colorClassLabels = [...]string{
	Excellent:    "sehr gut",
	Good:         "gut",
	Satisfactory: "befriedigend",
	Sufficient:   "ausreichend",
	Poor:         "mangelhaft",
	Insufficient: "ungenügend",
}

var colorClassText = [...]string{
	Excellent:    "text-green-600",
	Good:         "text-lime-600",
	Satisfactory: "text-yellow-600",
	Sufficient:   "text-orange-600",
	Poor:         "text-red-600",
	Insufficient: "text-red-800",
}

var colorClassBackground = [...]string{
	Excellent:    "bg-green-50 border-green-200",
	Good:         "bg-lime-50 border-lime-200",
	Satisfactory: "bg-yellow-50 border-yellow-200",
	Sufficient:   "bg-orange-50 border-orange-200",
	Poor:         "bg-red-50 border-red-200",
	Insufficient: "bg-red-100 border-red-300",
}

// GradeColorClass classifies a grade value. Each threshold belongs to the
// better class: 1.5 is Excellent, 1.51 is Good.
func GradeColorClass(value float64) ColorClass {
	switch {
	case value <= 1.5:
		return Excellent
	case value <= 2.5:
		return Good
	case value <= 3.5:
		return Satisfactory
	case value <= 4.5:
		return Sufficient
	case value <= 5.5:
		return Poor
	default:
		return Insufficient
	}
}

func (c ColorClass) valid() bool {
	return c >= Excellent && c <= Insufficient
}

func (c ColorClass) String() string {
	if !c.valid() {
		return "unknown"
	}
	return colorClassNames[c]
}

// Label is the German verbal grade, e.g. "sehr gut".
func (c ColorClass) Label() string {
	if !c.valid() {
		return ""
	}
	return colorClassLabels[c]
}

func (c ColorClass) TextClass() string {
	if !c.valid() {
		return ""
	}
	return colorClassText[c]
}

func (c ColorClass) BackgroundClass() string {
	if !c.valid() {
		return ""
	}
	return colorClassBackground[c]
}

var colorClassRGB = [...][3]int{
	Excellent:    {34, 197, 94},
	Good:         {163, 230, 53},
	Satisfactory: {234, 179, 8},
	Sufficient:   {249, 115, 22},
	Poor:         {239, 68, 68},
	Insufficient: {153, 27, 27},
}

// RGB is the colour used for the class in printed reports.
func (c ColorClass) RGB() (r, g, b int) {
	if !c.valid() {
		return 0, 0, 0
	}
	rgb := colorClassRGB[c]
	return rgb[0], rgb[1], rgb[2]
}
