package schema

// Icon names used for expandable section headers.
const (
	IconPalette         = "mdi:palette"
	IconAlignHorizontal = "mdi:align-horizontal-left"
	IconEye             = "mdi:eye"
	IconFormatColorFill = "mdi:format-color-fill"
	IconChevronRight    = "mdi:chevron-right"
)

var aggregateOptions = []Option{
	{Label: "Average", Value: "avg"},
	{Label: "Median", Value: "median"},
	{Label: "Minimum", Value: "min"},
	{Label: "Maximum", Value: "max"},
	{Label: "First", Value: "first"},
	{Label: "Last", Value: "last"},
	{Label: "Sum", Value: "sum"},
}

var showHideHover = []Option{
	{Label: "Show", Value: true},
	{Label: "Hide", Value: false},
	{Label: "Hover", Value: "hover"},
}

func text(name string) Field {
	return Field{Name: name, Selector: Selector{Kind: SelectorText}}
}

func boolean(name string) Field {
	return Field{Name: name, Selector: Selector{Kind: SelectorBoolean}}
}

func dropdown(name string, opts []Option) Field {
	return Field{Name: name, Selector: Selector{Kind: SelectorSelect, Options: opts, Dropdown: true}}
}

// Card is the schema of the composite form shown on the root editor page.
// Entities and color thresholds are edited by their own panels.
var Card = []Field{
	{
		Type:  TypeExpandable,
		Icon:  IconPalette,
		Title: "Appearance",
		Schema: []Field{
			{
				Type: TypeGrid,
				Schema: []Field{
					text("name"),
					{Name: "icon", Selector: Selector{Kind: SelectorIcon}},
					text("unit"),
					boolean("hour24"),
					{Name: "hours_to_show", Selector: Selector{Kind: SelectorInteger}, Default: 24},
					{Name: "points_per_hour", Selector: Selector{Kind: SelectorFloat}, Default: 0.5},
					dropdown("aggregate_func", aggregateOptions),
					dropdown("group_by", []Option{
						{Label: "Interval", Value: "interval"},
						{Label: "Date", Value: "date"},
						{Label: "Hour", Value: "hour"},
					}),
				},
			},
			{
				Type:  TypeExpandable,
				Icon:  IconAlignHorizontal,
				Title: "Alignment",
				Schema: []Field{
					{
						Type: TypeGrid,
						Schema: []Field{
							dropdown("align_header", []Option{
								{Label: "Default", Value: "default"},
								{Label: "Left", Value: "left"},
								{Label: "Right", Value: "right"},
								{Label: "Center", Value: "center"},
							}),
							{Name: "align_icon", Selector: Selector{
								Kind: SelectorSelect,
								Options: []Option{
									{Label: "Left", Value: "left"},
									{Label: "Right", Value: "right"},
									{Label: "State", Value: "state"},
								},
								Dropdown: true,
								Default:  "right",
							}},
							dropdown("align_state", []Option{
								{Label: "Left", Value: "left"},
								{Label: "Right", Value: "right"},
								{Label: "Center", Value: "center"},
							}),
						},
					},
				},
			},
			{
				Name:  "show",
				Type:  TypeExpandable,
				Icon:  IconEye,
				Title: "Display",
				Schema: []Field{
					{
						Type: TypeGrid,
						Schema: []Field{
							boolean("name"),
							boolean("icon"),
							dropdown("state", []Option{
								{Label: "Show", Value: true},
								{Label: "Hide", Value: false},
								{Label: "Last", Value: "last"},
							}),
							dropdown("graph", []Option{
								{Label: "Line", Value: "line"},
								{Label: "Bar", Value: "bar"},
								{Label: "Hide", Value: false},
							}),
							dropdown("fill", []Option{
								{Label: "Show", Value: true},
								{Label: "Hide", Value: false},
								{Label: "Fade", Value: "fade"},
							}),
							dropdown("points", showHideHover),
							boolean("legend"),
							boolean("average"),
							boolean("extrema"),
							dropdown("labels", showHideHover),
							dropdown("labels_secondary", showHideHover),
							boolean("name_adaptive_color"),
							boolean("icon_adaptive_color"),
						},
					},
				},
			},
		},
	},
	{Name: "tap_action", Selector: Selector{Kind: SelectorUIAction}},
}

// Entity is the schema of the single-entity panel.
var Entity = []Field{
	{
		Type: TypeGrid,
		Schema: []Field{
			{Name: "entity", Selector: Selector{Kind: SelectorEntity}},
			{
				Name:     "attribute",
				Selector: Selector{Kind: SelectorAttribute},
				Context:  map[string]string{"filter_entity": "entity"},
			},
			text("name"),
			text("unit"),
			{Name: "color", Selector: Selector{Kind: SelectorHexColor, Clearable: true}},
			boolean("state_adaptive_color"),
			dropdown("aggregate_func", aggregateOptions),
		},
	},
	{
		Type:  TypeExpandable,
		Icon:  IconEye,
		Title: "Display",
		Schema: []Field{
			{
				Type: TypeGrid,
				Schema: []Field{
					boolean("show_state"),
					boolean("show_indicator"),
					boolean("show_graph"),
					boolean("show_line"),
					boolean("show_fill"),
					boolean("show_points"),
					boolean("show_legend"),
					boolean("show_adaptive_color"),
					boolean("smoothing"),
				},
			},
		},
	},
	{Name: "y_axis", Selector: Selector{
		Kind: SelectorSelect,
		Options: []Option{
			{Label: "Primary", Value: "primary"},
			{Label: "Secondary", Value: "secondary"},
		},
	}},
}
