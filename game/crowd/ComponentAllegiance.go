package crowd

type Faction uint8

const (
	FactionHostile Faction = iota
	FactionDefender
)

func (f Faction) String() string {
	if f == FactionHostile {
		return "hostile"
	}
	return "defender"
}

func FactionFromString(s string) Faction {
	if s == "hostile" {
		return FactionHostile
	}
	return FactionDefender
}

type Allegiance struct {
	faction  Faction
	unitType string
}

func (game CrowdGame) CastAllegiance(data interface{}) *Allegiance {
	return data.(*Allegiance)
}

func (a Allegiance) Faction() Faction {
	return a.faction
}

func (a Allegiance) UnitType() string {
	return a.unitType
}

func (a Allegiance) HostileTowards(other *Allegiance) bool {
	return a.faction != other.faction
}
