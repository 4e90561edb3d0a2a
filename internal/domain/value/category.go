package value

type Category string

const (
	CategoryBatteries  Category = "Batteries"
	CategoryPowerTools Category = "Power Tools"
	CategoryLighting   Category = "Lighting"
	CategoryHandTools  Category = "Hand Tools"
	CategoryOutdoor    Category = "Outdoor"
	CategoryStorage    Category = "Storage"
	CategoryApparel    Category = "Apparel"
	CategoryOther      Category = "Other"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) Valid() bool {
	switch c {
	case CategoryBatteries, CategoryPowerTools, CategoryLighting, CategoryHandTools,
		CategoryOutdoor, CategoryStorage, CategoryApparel, CategoryOther:
		return true
	}

	return false
}
