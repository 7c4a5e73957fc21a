package gamepad

import "fmt"

// AxisMapping names a raw axis index.
type AxisMapping struct {
	Index  int32
	Target string // "left_x", "left_y", "right_x", "right_y", "lt", "rt", "dpad_x", "dpad_y"
}

// ButtonMapping names a raw button index. Face buttons are named by position:
// "a" is always the bottom face button.
type ButtonMapping struct {
	Index  int32
	Target string // "a", "b", "x", "y", "lb", "rb", "back", "start", "home", "l3", "r3"
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// ButtonName returns the mapped name of a raw button, or "button_N".
func (m *DeviceMapping) ButtonName(index int32) string {
	for _, bm := range m.Buttons {
		if bm.Index == index {
			return bm.Target
		}
	}
	return fmt.Sprintf("button_%d", index)
}

// AxisName returns the mapped name of a raw axis, or "axis_N".
func (m *DeviceMapping) AxisName(index int32) string {
	for _, am := range m.Axes {
		if am.Index == index {
			return am.Target
		}
	}
	return fmt.Sprintf("axis_%d", index)
}

// Built-in mappings for common controllers, in the index order the Linux
// joystick drivers and SDL report them.

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Axes: []AxisMapping{
		{Index: 0, Target: "left_x"},
		{Index: 1, Target: "left_y"},
		{Index: 2, Target: "lt"},
		{Index: 3, Target: "right_x"},
		{Index: 4, Target: "right_y"},
		{Index: 5, Target: "rt"},
		{Index: 6, Target: "dpad_x"},
		{Index: 7, Target: "dpad_y"},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: "a"},
		{Index: 1, Target: "b"},
		{Index: 2, Target: "x"},
		{Index: 3, Target: "y"},
		{Index: 4, Target: "lb"},
		{Index: 5, Target: "rb"},
		{Index: 6, Target: "back"},
		{Index: 7, Target: "start"},
		{Index: 8, Target: "home"},
		{Index: 9, Target: "l3"},
		{Index: 10, Target: "r3"},
	},
	HasHat: true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: []AxisMapping{
		{Index: 0, Target: "left_x"},
		{Index: 1, Target: "left_y"},
		{Index: 2, Target: "lt"},
		{Index: 3, Target: "right_x"},
		{Index: 4, Target: "right_y"},
		{Index: 5, Target: "rt"},
		{Index: 6, Target: "dpad_x"},
		{Index: 7, Target: "dpad_y"},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: "a"},     // Cross
		{Index: 1, Target: "b"},     // Circle
		{Index: 2, Target: "y"},     // Triangle
		{Index: 3, Target: "x"},     // Square
		{Index: 4, Target: "lb"},    // L1
		{Index: 5, Target: "rb"},    // R1
		{Index: 8, Target: "back"},  // Share / Create
		{Index: 9, Target: "start"}, // Options
		{Index: 10, Target: "home"}, // PS button
		{Index: 11, Target: "l3"},
		{Index: 12, Target: "r3"},
	},
	HasHat: true,
}

var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: []AxisMapping{
		{Index: 0, Target: "left_x"},
		{Index: 1, Target: "left_y"},
		{Index: 2, Target: "right_x"},
		{Index: 3, Target: "right_y"},
		{Index: 4, Target: "dpad_x"},
		{Index: 5, Target: "dpad_y"},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: "a"}, // B label, bottom position
		{Index: 1, Target: "b"}, // A label, right position
		{Index: 2, Target: "y"},
		{Index: 3, Target: "x"},
		{Index: 5, Target: "lb"},
		{Index: 6, Target: "rb"},
		{Index: 9, Target: "back"},
		{Index: 10, Target: "start"},
		{Index: 11, Target: "home"},
		{Index: 12, Target: "l3"},
		{Index: 13, Target: "r3"},
	},
	HasHat: true,
}

var genericMapping = &DeviceMapping{
	Name:    "generic",
	Axes:    xboxMapping.Axes,
	Buttons: xboxMapping.Buttons,
	HasHat:  true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
