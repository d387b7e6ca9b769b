package catalog

// Default returns the fixed demo catalog. Product ids and prices are part of
// the test vocabulary and must stay stable across runs.
func Default() *Catalog {
	return New([]Product{
		{
			ID:          "sb-001",
			Name:        "Alpine Freestyle Snowboard",
			Category:    CategorySnowboards,
			Price:       499.99,
			Description: "Twin-tip all-mountain board with a medium flex, at home in the park and on groomers.",
			Features:    []string{"True twin shape", "Medium flex", "Sintered base"},
			Specs:       map[string]string{"length": "156cm", "flex": "5/10", "profile": "Hybrid camber"},
			Stock:       12,
			Rating:      4.7,
			ReviewCount: 128,
			Image:       "/static/img/sb-001.jpg",
		},
		{
			ID:          "sb-002",
			Name:        "Backcountry Carver",
			Category:    CategorySnowboards,
			Price:       649.99,
			Description: "Directional freeride board built for deep snow and high-speed descents.",
			Features:    []string{"Directional shape", "Stiff flex", "Carbon stringers"},
			Specs:       map[string]string{"length": "161cm", "flex": "8/10", "profile": "Directional camber"},
			Stock:       5,
			Rating:      4.9,
			ReviewCount: 64,
			Image:       "/static/img/sb-002.jpg",
		},
		{
			ID:          "sb-003",
			Name:        "Park Rat 148",
			Category:    CategorySnowboards,
			Price:       329.99,
			Description: "Soft jib board for rails and boxes. Currently sold out.",
			Features:    []string{"Soft flex", "Reverse camber", "Extruded base"},
			Specs:       map[string]string{"length": "148cm", "flex": "3/10", "profile": "Rocker"},
			Stock:       0,
			Rating:      4.2,
			ReviewCount: 87,
			Image:       "/static/img/sb-003.jpg",
		},
		{
			ID:          "bd-001",
			Name:        "Pro Series Bindings",
			Category:    CategoryBindings,
			Price:       249.99,
			Description: "Responsive freestyle bindings with tool-free adjustment.",
			Features:    []string{"Aluminum chassis", "Canted footbed", "Tool-free straps"},
			Specs:       map[string]string{"size": "M/L", "flex": "6/10"},
			Stock:       20,
			Rating:      4.6,
			ReviewCount: 95,
			Image:       "/static/img/bd-001.jpg",
		},
		{
			ID:          "bd-002",
			Name:        "Entry Strap Bindings",
			Category:    CategoryBindings,
			Price:       149.99,
			Description: "Forgiving bindings for beginners and progressing riders.",
			Features:    []string{"Composite chassis", "Padded ankle strap"},
			Specs:       map[string]string{"size": "S/M", "flex": "3/10"},
			Stock:       15,
			Rating:      4.3,
			ReviewCount: 41,
			Image:       "/static/img/bd-002.jpg",
		},
		{
			ID:          "bt-001",
			Name:        "All-Mountain Boots",
			Category:    CategoryBoots,
			Price:       279.99,
			Description: "Mid-flex boots with heat-moldable liners and dual-zone lacing.",
			Features:    []string{"Heat-moldable liner", "Dual-zone BOA", "Vibram outsole"},
			Specs:       map[string]string{"size": "US 8-13", "flex": "6/10"},
			Stock:       18,
			Rating:      4.5,
			ReviewCount: 73,
			Image:       "/static/img/bt-001.jpg",
		},
		{
			ID:          "ac-001",
			Name:        "Anti-Fog Goggles",
			Category:    CategoryAccessories,
			Price:       89.99,
			Description: "Spherical dual-lens goggles with magnetic lens swap.",
			Features:    []string{"Magnetic lenses", "Anti-fog coating", "OTG fit"},
			Specs:       map[string]string{"lens": "VLT 23%", "frame": "Medium"},
			Stock:       30,
			Rating:      4.4,
			ReviewCount: 156,
			Image:       "/static/img/ac-001.jpg",
		},
		{
			ID:          "ac-002",
			Name:        "Board Wax Kit",
			Category:    CategoryAccessories,
			Price:       24.99,
			Description: "All-temperature wax with iron and scraper.",
			Features:    []string{"All-temp wax", "Scraper included"},
			Specs:       map[string]string{"weight": "120g"},
			Stock:       50,
			Rating:      4.8,
			ReviewCount: 210,
			Image:       "/static/img/ac-002.jpg",
		},
	})
}
