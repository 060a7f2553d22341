package types

// categoryLabels maps the stable category codes used in recipe URLs to
// their display labels. The set is fixed; anything outside it is rejected
// at the parse boundary.
var categoryLabels = map[string]string{
	"aquatic":        "水产",
	"breakfast":      "早餐",
	"condiment":      "酱料与其他材料",
	"dessert":        "甜点",
	"drink":          "饮料",
	"meat_dish":      "荤菜",
	"semi-finished":  "半成品加工",
	"soup":           "汤与粥",
	"staple":         "主食",
	"vegetable_dish": "素菜",
}

// categoryCodes is the reverse mapping, label -> code.
var categoryCodes = func() map[string]string {
	m := make(map[string]string, len(categoryLabels))
	for code, label := range categoryLabels {
		m[label] = code
	}
	return m
}()

// CategoryLabel returns the display label for a category code.
func CategoryLabel(code string) (string, bool) {
	label, ok := categoryLabels[code]
	return label, ok
}

// CategoryCode returns the category code for a display label.
func CategoryCode(label string) (string, bool) {
	code, ok := categoryCodes[label]
	return code, ok
}

// KnownCategory reports whether code is one of the fixed category codes.
func KnownCategory(code string) bool {
	_, ok := categoryLabels[code]
	return ok
}

// CategoryCount returns the number of known categories.
func CategoryCount() int {
	return len(categoryLabels)
}
