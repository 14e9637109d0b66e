package domain

// Tag is one entry of the fixed tag catalog. The color pair carries the CSS
// classes the frontend renders the badge with.
type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TextColor string `json:"text_color"`
}

// Color is one entry of the fixed card color palette. Value is empty for the
// "none" entry, which clears the assignment instead of storing a marker.
type Color struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Border string `json:"border"`
	Bg     string `json:"bg"`
}

// Tags is the fixed tag catalog. Configuration, not persisted.
var Tags = []Tag{
	{ID: "year-1", Name: "Year 1", Color: "bg-blue-600", TextColor: "text-blue-100"},
	{ID: "year-2", Name: "Year 2", Color: "bg-green-600", TextColor: "text-green-100"},
	{ID: "coursework", Name: "Coursework", Color: "bg-orange-600", TextColor: "text-orange-100"},
	{ID: "personal", Name: "Personal", Color: "bg-purple-600", TextColor: "text-purple-100"},
	{ID: "in-progress", Name: "In progress", Color: "bg-yellow-600", TextColor: "text-yellow-100"},
	{ID: "unfinished", Name: "Unfinished", Color: "bg-red-600", TextColor: "text-red-100"},
	{ID: "done", Name: "Done", Color: "bg-emerald-600", TextColor: "text-emerald-100"},
}

// Colors is the fixed color palette, "none" first.
var Colors = []Color{
	{Name: "None", Value: "", Border: "border-gray-700", Bg: "bg-gray-800"},
	{Name: "Red", Value: "red", Border: "border-red-700", Bg: "bg-red-900/20"},
	{Name: "Orange", Value: "orange", Border: "border-orange-700", Bg: "bg-orange-900/20"},
	{Name: "Yellow", Value: "yellow", Border: "border-yellow-700", Bg: "bg-yellow-900/20"},
	{Name: "Green", Value: "green", Border: "border-green-700", Bg: "bg-green-900/20"},
	{Name: "Blue", Value: "blue", Border: "border-blue-700", Bg: "bg-blue-900/20"},
	{Name: "Purple", Value: "purple", Border: "border-purple-700", Bg: "bg-purple-900/20"},
	{Name: "Pink", Value: "pink", Border: "border-pink-700", Bg: "bg-pink-900/20"},
}

// TagByID looks up a catalog tag.
func TagByID(id string) (Tag, bool) {
	for _, t := range Tags {
		if t.ID == id {
			return t, true
		}
	}
	return Tag{}, false
}

// ColorByValue looks up a palette color. The empty value resolves to "none".
func ColorByValue(value string) (Color, bool) {
	for _, c := range Colors {
		if c.Value == value {
			return c, true
		}
	}
	return Color{}, false
}
