// Package bloodtype models the eight ABO/Rh blood groups and the
// transfusion compatibility relation between them.
package bloodtype

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/rapidblood/internal/common"
)

// Type is one of the eight ABO/Rh groups, e.g. "O-".
type Type string

const (
	APos  Type = "A+"
	ANeg  Type = "A-"
	BPos  Type = "B+"
	BNeg  Type = "B-"
	ABPos Type = "AB+"
	ABNeg Type = "AB-"
	OPos  Type = "O+"
	ONeg  Type = "O-"
)

var all = []Type{APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg}

// receivesFrom maps a recipient type to the donor types it can accept.
var receivesFrom = map[Type][]Type{
	APos:  {APos, ANeg, OPos, ONeg},
	ANeg:  {ANeg, ONeg},
	BPos:  {BPos, BNeg, OPos, ONeg},
	BNeg:  {BNeg, ONeg},
	ABPos: {APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg},
	ABNeg: {ANeg, BNeg, ABNeg, ONeg},
	OPos:  {OPos, ONeg},
	ONeg:  {ONeg},
}

// All returns the eight types in display order.
func All() []Type {
	return slices.Clone(all)
}

// Valid reports whether t is one of the eight types.
func (t Type) Valid() bool {
	_, ok := receivesFrom[t]
	return ok
}

func (t Type) String() string { return string(t) }

// Parse normalises s ("  ab+ " -> AB+) and rejects anything else.
func Parse(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown blood type %q", common.ErrValidation, s)
	}
	return t, nil
}

// IsCompatible reports whether a recipient of type recipient can receive
// blood from a donor of type donor. Unknown types are never compatible.
func IsCompatible(recipient, donor Type) bool {
	return slices.Contains(receivesFrom[recipient], donor)
}

// DonorsFor lists the donor types recipient can receive from.
func DonorsFor(recipient Type) []Type {
	return slices.Clone(receivesFrom[recipient])
}

// RecipientsFor lists the recipient types that can receive from donor.
func RecipientsFor(donor Type) []Type {
	var out []Type
	for _, r := range all {
		if IsCompatible(r, donor) {
			out = append(out, r)
		}
	}
	return out
}
