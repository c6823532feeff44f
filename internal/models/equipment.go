package models

const (
	EquipmentFurnace   = "induction-furnace"
	EquipmentShotBlast = "shot-blast"
	EquipmentMixer     = "versatic-mixer"
)

// Catalogue returns the machines on the foundry floor overview.
func Catalogue() []Equipment {
	return []Equipment{
		{
			ID:     EquipmentFurnace,
			Name:   "Induction Furnace",
			Status: StatusRunning,
			Parameters: []Parameter{
				{Label: "Temperature", Value: "1450", Unit: "°C"},
				{Label: "Power", Value: "750", Unit: "kW"},
				{Label: "Melt Time", Value: "45", Unit: "min"},
				{Label: "Cooling Water", Value: "28", Unit: "°C"},
			},
			Baseline: 1450,
			Unit:     "°C",
		},
		{
			ID:     EquipmentShotBlast,
			Name:   "Shot Blast",
			Status: StatusRunning,
			Parameters: []Parameter{
				{Label: "Vibration", Value: "2.5", Unit: "mm/s"},
				{Label: "Air Pressure", Value: "6.2", Unit: "bar"},
				{Label: "Cycle Time", Value: "15", Unit: "min"},
				{Label: "Abrasive Level", Value: "85", Unit: "%"},
			},
			Baseline: 6,
			Unit:     "bar",
		},
		{
			ID:     EquipmentMixer,
			Name:   "Versatic Mixer",
			Status: StatusMaintenance,
			Parameters: []Parameter{
				{Label: "Mix Speed", Value: "120", Unit: "RPM"},
				{Label: "Mix Time", Value: "8", Unit: "min"},
				{Label: "Temperature", Value: "32", Unit: "°C"},
				{Label: "Motor Load", Value: "75", Unit: "%"},
			},
			Baseline: 120,
			Unit:     "RPM",
		},
	}
}

// FindEquipment looks up a machine by ID.
func FindEquipment(id string) (Equipment, bool) {
	for _, eq := range Catalogue() {
		if eq.ID == id {
			return eq, true
		}
	}
	return Equipment{}, false
}
