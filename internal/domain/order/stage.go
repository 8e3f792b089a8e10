package order

import "strings"

// Stage represents the fulfillment stage of an order.
// Stages are operator-selected: any valid stage may be set from any other,
// but some transitions carry preconditions (see Order.ChangeStage).
type Stage string

const (
	StagePoruceno  Stage = "poruceno"   // placed
	StageNaStanju  Stage = "na_stanju"  // in stock
	StagePoslato   Stage = "poslato"    // shipped
	StageStiglo    Stage = "stiglo"     // arrived
	StageLeglePare Stage = "legle_pare" // settled
	StageVraceno   Stage = "vraceno"    // returned
)

// IsValid checks if the stage is a valid Stage
func (s Stage) IsValid() bool {
	switch s {
	case StagePoruceno, StageNaStanju, StagePoslato, StageStiglo, StageLeglePare, StageVraceno:
		return true
	}
	return false
}

// String returns the string representation of the Stage
func (s Stage) String() string {
	return string(s)
}

// RequiresShipmentNumber reports whether entering this stage requires a
// shipment number to be supplied as part of the same transition
func (s Stage) RequiresShipmentNumber() bool {
	return s == StagePoslato
}

// AllStages returns every stage in lifecycle order
func AllStages() []Stage {
	return []Stage{StagePoruceno, StageNaStanju, StagePoslato, StageStiglo, StageLeglePare, StageVraceno}
}

// DeleteConfirmationPhrase is the literal phrase an operator must type to
// delete an order that is already arrived, settled or returned. Compared
// case-insensitively after trimming.
const DeleteConfirmationPhrase = "obrisi"

// RequiresDeleteConfirmation reports whether deleting an order in this stage
// needs the typed confirmation phrase
func (s Stage) RequiresDeleteConfirmation() bool {
	switch s {
	case StageStiglo, StageLeglePare, StageVraceno:
		return true
	case StagePoruceno, StageNaStanju, StagePoslato:
		return false
	}
	return false
}

// MatchesDeleteConfirmation checks a typed phrase against the required one
func MatchesDeleteConfirmation(phrase string) bool {
	return strings.EqualFold(strings.TrimSpace(phrase), DeleteConfirmationPhrase)
}

// TransportMode is how the goods physically travel to the customer
type TransportMode string

const (
	TransportModeLicno TransportMode = "licno" // handed over in person
	TransportModeKurir TransportMode = "kurir" // courier service
)

// IsValid checks if the transport mode is known
func (m TransportMode) IsValid() bool {
	switch m {
	case TransportModeLicno, TransportModeKurir:
		return true
	}
	return false
}

// ShippingMode says whose shipping account a courier shipment goes out on.
// When set, the shipping owner field identifies the account holder.
type ShippingMode string

const (
	ShippingModeMoje    ShippingMode = "moje_slanje"     // own account
	ShippingModePartner ShippingMode = "slanje_partnera" // partner's account
)

// IsValid checks if the shipping mode is known
func (m ShippingMode) IsValid() bool {
	switch m {
	case ShippingModeMoje, ShippingModePartner:
		return true
	}
	return false
}
