package locale

// Fallback is the language every bundle falls back to.
const Fallback = "en"

// hostCatalogs mirrors the subset of generic card-editor labels a
// Lovelace host ships. Fields missing here resolve from the panel.
var hostCatalogs = map[string]Catalog{
	"en": {
		GenericPrefix + "name":          "Name",
		GenericPrefix + "icon":          "Icon",
		GenericPrefix + "unit":          "Unit",
		GenericPrefix + "entity":        "Entity",
		GenericPrefix + "attribute":     "Attribute",
		GenericPrefix + "hours_to_show": "Hours to show",
		GenericPrefix + "tap_action":    "Tap behavior",
	},
	"de": {
		GenericPrefix + "name":          "Name",
		GenericPrefix + "icon":          "Symbol",
		GenericPrefix + "unit":          "Einheit",
		GenericPrefix + "entity":        "Entität",
		GenericPrefix + "attribute":     "Attribut",
		GenericPrefix + "hours_to_show": "Anzuzeigende Stunden",
		GenericPrefix + "tap_action":    "Tippverhalten",
	},
}

var panelCatalogs = map[string]Catalog{
	"en": {
		"editor.edit_entity":      "Edit entity",
		"editor.color_thresholds": "Color thresholds",
		"editor.entities":         "Entities",

		CardPrefix + "hour24":              "24-hour clock",
		CardPrefix + "points_per_hour":     "Points per hour",
		CardPrefix + "aggregate_func":      "Aggregate function",
		CardPrefix + "group_by":            "Group by",
		CardPrefix + "align_header":        "Header alignment",
		CardPrefix + "align_icon":          "Icon alignment",
		CardPrefix + "align_state":         "State alignment",
		CardPrefix + "state":               "State",
		CardPrefix + "graph":               "Graph",
		CardPrefix + "fill":                "Fill",
		CardPrefix + "points":              "Points",
		CardPrefix + "legend":              "Legend",
		CardPrefix + "average":             "Average",
		CardPrefix + "extrema":             "Extrema",
		CardPrefix + "labels":              "Labels",
		CardPrefix + "labels_secondary":    "Secondary labels",
		CardPrefix + "name_adaptive_color": "Adaptive name color",
		CardPrefix + "icon_adaptive_color": "Adaptive icon color",

		EntityPrefix + "color":                "Color",
		EntityPrefix + "state_adaptive_color": "Adaptive state color",
		EntityPrefix + "aggregate_func":       "Aggregate function",
		EntityPrefix + "show_state":           "Show state",
		EntityPrefix + "show_indicator":       "Show indicator",
		EntityPrefix + "show_graph":           "Show graph",
		EntityPrefix + "show_line":            "Show line",
		EntityPrefix + "show_fill":            "Show fill",
		EntityPrefix + "show_points":          "Show points",
		EntityPrefix + "show_legend":          "Show in legend",
		EntityPrefix + "show_adaptive_color":  "Adaptive color",
		EntityPrefix + "smoothing":            "Smoothing",
		EntityPrefix + "y_axis":               "Y axis",
	},
	"de": {
		"editor.edit_entity":      "Entität bearbeiten",
		"editor.color_thresholds": "Farbschwellen",
		"editor.entities":         "Entitäten",

		CardPrefix + "hour24":          "24-Stunden-Format",
		CardPrefix + "points_per_hour": "Punkte pro Stunde",
		CardPrefix + "aggregate_func":  "Aggregatfunktion",
		CardPrefix + "group_by":        "Gruppieren nach",
		CardPrefix + "legend":          "Legende",
		CardPrefix + "average":         "Durchschnitt",

		EntityPrefix + "color":          "Farbe",
		EntityPrefix + "aggregate_func": "Aggregatfunktion",
		EntityPrefix + "show_state":     "Zustand anzeigen",
		EntityPrefix + "smoothing":      "Glättung",
		EntityPrefix + "y_axis":         "Y-Achse",
	},
}

var (
	hostBundle  = NewBundle(hostCatalogs, Fallback)
	panelBundle = NewBundle(panelCatalogs, Fallback)
)

// Host returns the generic host catalog for lang.
func Host(lang string) Localizer {
	return hostBundle.Catalog(lang)
}

// Panel returns the editor's own catalog for lang.
func Panel(lang string) Localizer {
	return panelBundle.Catalog(lang)
}

// Languages lists the languages the editor ships translations for.
func Languages() []string {
	return panelBundle.Languages()
}
