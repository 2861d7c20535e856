package domain

// Compiled-in defaults for the XPA3 board. Door membership in a zone is fixed;
// only the location and override values change at runtime.
var defaultFront = map[int]string{
	1:  "IND9",
	2:  "XNJ2",
	3:  "IB",
	4:  "IB",
	5:  "IB",
	6:  "IB",
	7:  "IB",
	8:  "XMD2",
	9:  "IB",
	10: "IB",
	11: "XPH7",
	12: "XLA3",
	13: "TEB9",
	14: "XCE1",
	15: "RDU2",
}

var defaultBack = map[int]string{
	122: "ABE8",
	123: "XME1",
	124: "SMF3",
	125: "VGT2",
	126: "AVP1",
	127: Blank,
	128: "PHL4",
	129: "XCL1",
	130: "CHO1",
	131: "XAT3",
	132: "SWF2",
	133: "SCK4",
	134: "RMN3",
	135: "CMH3",
	136: "GYR3",
	137: "FTW1",
	138: Blank,
	139: "HIA1",
}

// TruckByLocation maps a normalized location code to the truck type that
// services it. An empty value means the location takes no truck at all.
var TruckByLocation = map[string]string{
	"XME1":       "JBHU",
	"SCK4":       "JBHU",
	"XAT3":       "AZNU",
	"FTW1":       "JBHU",
	"VGT2":       "XPOU",
	"XLA3":       "JBHU",
	"GYR3":       "JBHU",
	"SMF3":       "JBHU",
	"CLOSED":     "",
	"EMPTY DOOR": "",
}

// DefaultTruck is resolved for occupied doors with no override and no map entry.
const DefaultTruck = "AZNG"

// TruckTypes is the closed set of assignable truck codes. "AUTO" is not a
// member; it is the form sentinel that clears an override.
var TruckTypes = []string{"AZNG", "AZNU", "JBHU", "XPOU"}

// AllLocations is the master dropdown list, sorted.
var AllLocations = []string{
	"ABE4", "ABE8", "AVP1", "BOS7", "CHO1", "CLOSED", "CLT2", "CMH3",
	"Empty", "Empty Door", "FTW1", "FWA4", "GYR3", "HGR6", "HIA1", "IB",
	"IND9", "LAS1", "MDW2", "MEM1", "PHL4", "RDU2", "RMN3", "SCK4",
	"SMF3", "SWF2", "TEB4", "TEB9", "VGT2", "XAT3", "XCE1", "XCL1",
	"XLA3", "XLX1", "XMD2", "XME1", "XMI3", "XNJ2", "XPH7", "XRD4",
	"XRI3",
}

// SeedStates returns one row per door from the compiled-in defaults, ordered
// by door ascending. Seed rows never carry an override.
func SeedStates() []DoorState {
	states := make([]DoorState, 0, len(defaultFront)+len(defaultBack))
	for _, zone := range []map[int]string{defaultFront, defaultBack} {
		for door, loc := range zone {
			states = append(states, DoorState{Door: door, Location: loc})
		}
	}
	sortStates(states)
	return states
}

func copyDoors(src map[int]string) map[int]string {
	dst := make(map[int]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
