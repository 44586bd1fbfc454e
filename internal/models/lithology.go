package models

// Lithology classifies the soil of a layer.
type Lithology string

const (
	LithologyPRS       Lithology = "prs"
	LithologyPeat      Lithology = "peat"
	LithologyLoam      Lithology = "loam"
	LithologySandyLoam Lithology = "sandy_loam"
	LithologySand      Lithology = "sand"
)

var Lithologies = []Lithology{
	LithologyPRS,
	LithologyPeat,
	LithologyLoam,
	LithologySandyLoam,
	LithologySand,
}

var lithologyDisplay = map[Lithology]string{
	LithologyPRS:       "ПРС",
	LithologyPeat:      "Торф",
	LithologyLoam:      "Суглинок",
	LithologySandyLoam: "Супесь",
	LithologySand:      "Песок",
}

func (l Lithology) Valid() bool {
	_, ok := lithologyDisplay[l]
	return ok
}

// Display returns the human readable label, or the raw code when unknown.
func (l Lithology) Display() string {
	if label, ok := lithologyDisplay[l]; ok {
		return label
	}
	return string(l)
}
