package menu

// DefaultScreen returns the demo main menu. onQuit runs when Quit is pressed.
func DefaultScreen(onQuit func()) Screen {
	return Screen{
		Title: "Main Menu",
		Placements: []Placement{
			{Widget: NewButton("play", "Play", nil), Row: 0, Column: 0, TabIndex: 0},
			{Widget: NewButton("continue", "Continue", nil), Row: 0, Column: 1, TabIndex: 1, Disabled: true},
			{Widget: NewButton("multiplayer", "Multiplayer", nil), Row: 0, Column: 2, TabIndex: 2},
			{Widget: NewToggle("sound", "Sound", true), Row: 1, Column: 0, TabIndex: 3},
			{Widget: NewToggle("music", "Music", true), Row: 1, Column: 1, TabIndex: 4},
			{Widget: NewToggle("subtitles", "Subtitles", false), Row: 1, Column: 2, TabIndex: 5},
			{
				Widget: NewGroup("controls", "Controls",
					Placement{Widget: NewToggle("invert_y", "Invert Y", false), Row: 3, Column: 0, TabIndex: 7},
					Placement{Widget: NewToggle("vibration", "Vibration", true), Row: 3, Column: 1, TabIndex: 8},
					Placement{Widget: NewButton("remap", "Remap", nil), Row: 3, Column: 2, TabIndex: 9},
				),
				Row: 2, Column: 0, TabIndex: 6,
			},
			{Widget: NewButton("credits", "Credits", nil), Row: 2, Column: 2, TabIndex: 10},
			{Widget: NewButton("quit", "Quit", onQuit), Row: 4, Column: 1, TabIndex: 11},
		},
	}
}
