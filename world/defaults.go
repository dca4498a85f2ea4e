package world

// RegisterDefaultContent fills a registry with the standard content set:
// enough blocks, items, units, and statuses to run typical programs
// without an external content file.
func RegisterDefaultContent(r *ContentRegistry) {
	for _, name := range []string{
		"copper", "lead", "graphite", "silicon", "titanium", "thorium",
		"coal", "sand", "metaglass", "plastanium",
	} {
		r.AddItem(&Item{Name: name})
	}

	for _, name := range []string{
		"wet", "burning", "freezing", "shocked", "slow", "fast",
		"overclock", "boss", "disarmed", "invincible",
	} {
		r.AddStatus(&StatusEffect{Name: name})
	}

	// floors and ores
	for _, name := range []string{"stone", "metal-floor", "sand-floor", "grass", "ice"} {
		r.AddBlock(&Block{Name: name, IsFloor: true})
	}
	for _, item := range []string{"copper", "lead", "coal", "titanium", "thorium"} {
		r.AddBlock(&Block{Name: "ore-" + item, IsOverlay: true})
	}

	// processors
	r.AddBlock(&Block{Name: "micro-processor", IsLogic: true, MaxIPT: 2, Size: 1, CanBeBuilt: true})
	r.AddBlock(&Block{Name: "logic-processor", IsLogic: true, MaxIPT: 8, Size: 2, CanBeBuilt: true})
	r.AddBlock(&Block{Name: "hyper-processor", IsLogic: true, MaxIPT: 25, Size: 3, CanBeBuilt: true})
	r.AddBlock(&Block{Name: "world-processor", IsLogic: true, Privileged: true, MaxIPT: 1000, Size: 1, Hidden: true})

	// logic peripherals
	r.AddBlock(&Block{Name: "memory-cell", MemorySize: 64, Size: 1, CanBeBuilt: true})
	r.AddBlock(&Block{Name: "memory-bank", MemorySize: 512, Size: 2, CanBeBuilt: true})
	r.AddBlock(&Block{Name: "world-cell", MemorySize: 512, Size: 1, Privileged: true, Hidden: true})
	r.AddBlock(&Block{Name: "message", IsMessage: true, Size: 1, CanBeBuilt: true})
	r.AddBlock(&Block{Name: "world-message", IsMessage: true, Size: 1, Privileged: true, Hidden: true})
	r.AddBlock(&Block{Name: "logic-display", IsDisplay: true, Size: 3, CanBeBuilt: true})
	r.AddBlock(&Block{Name: "large-logic-display", IsDisplay: true, Size: 6, CanBeBuilt: true})

	// common structures
	r.AddBlock(&Block{Name: "core-shard", Size: 3, ItemCap: 4000,
		Flags: []BlockFlag{FlagCore, FlagStorage}, TakesUnits: true})
	r.AddBlock(&Block{Name: "container", Size: 2, ItemCap: 300, CanBeBuilt: true,
		Flags: []BlockFlag{FlagStorage}})
	r.AddBlock(&Block{Name: "duo", Size: 1, Range: 8.5 * TileSize, CanBeBuilt: true,
		Flags: []BlockFlag{FlagTurret}})
	r.AddBlock(&Block{Name: "lancer", Size: 2, Range: 20 * TileSize, CanBeBuilt: true,
		Flags: []BlockFlag{FlagTurret}})
	r.AddBlock(&Block{Name: "battery", Size: 1, CanBeBuilt: true,
		Flags: []BlockFlag{FlagBattery}})
	r.AddBlock(&Block{Name: "thorium-reactor", Size: 3, CanBeBuilt: true,
		Flags: []BlockFlag{FlagGenerator, FlagReactor}})
	r.AddBlock(&Block{Name: "ground-factory", Size: 3, CanBeBuilt: true,
		Flags: []BlockFlag{FlagFactory}})
	r.AddBlock(&Block{Name: "repair-point", Size: 1, Range: 10 * TileSize, CanBeBuilt: true,
		Flags: []BlockFlag{FlagRepair}})
	r.AddBlock(&Block{Name: "copper-wall", Solid: true, Size: 1, CanBeBuilt: true})

	r.AddUnitType(&UnitType{Name: "mono", Flying: true, LogicControllable: true, CanMine: true,
		HitSize: 6, Range: 0, BuildRange: 0, Health: 100, ItemCapacity: 30})
	r.AddUnitType(&UnitType{Name: "poly", Flying: true, LogicControllable: true, CanBuild: true,
		HitSize: 7, Range: 8 * TileSize, BuildRange: 20 * TileSize, Health: 400, ItemCapacity: 70})
	r.AddUnitType(&UnitType{Name: "mega", Flying: true, LogicControllable: true, CanBuild: true,
		PayloadCapacity: 100, HitSize: 12, Range: 10 * TileSize, BuildRange: 16 * TileSize,
		Health: 460, ItemCapacity: 80})
	r.AddUnitType(&UnitType{Name: "dagger", LogicControllable: true,
		HitSize: 8, Range: 7.5 * TileSize, Health: 150, ItemCapacity: 30})
	r.AddUnitType(&UnitType{Name: "fortress", LogicControllable: true,
		HitSize: 13, Range: 11 * TileSize, Health: 900, ItemCapacity: 40})
	r.AddUnitType(&UnitType{Name: "flare", Flying: true, LogicControllable: true,
		HitSize: 8, Range: 7 * TileSize, Health: 70, ItemCapacity: 15})
	r.AddUnitType(&UnitType{Name: "reign", LogicControllable: true, Boss: true,
		HitSize: 26, Range: 10 * TileSize, Health: 24000, ItemCapacity: 130})
	r.AddUnitType(&UnitType{Name: "gamma", Flying: true, LogicControllable: false, CanBuild: true, CanMine: true,
		HitSize: 11, Range: 8 * TileSize, BuildRange: 23 * TileSize, Health: 260, ItemCapacity: 70})
}
