package gnark

import (
	"github.com/consensys/gnark/frontend"

	"github.com/didwallet/zk-disclosure/circuits/ageabove"
	"github.com/didwallet/zk-disclosure/circuits/employment"
	"github.com/didwallet/zk-disclosure/circuits/selective"
	"github.com/didwallet/zk-disclosure/circuits/studentstatus"
	"github.com/didwallet/zk-disclosure/circuits/vaccination"
	"github.com/didwallet/zk-disclosure/prover"
)

// CircuitSpec ties a circuit id to its template and witness assignment.
type CircuitSpec struct {
	ID       string
	Version  uint
	Template func() frontend.Circuit
	Assign   func(public [][]byte, priv prover.PrivateInputs) (frontend.Circuit, error)
}

// Circuits is the registry of proving circuits, keyed by circuit id.
var Circuits = map[string]CircuitSpec{
	ageabove.CircuitID: {
		ID:       ageabove.CircuitID,
		Version:  ageabove.Version,
		Template: ageabove.Template,
		Assign:   ageabove.Assign,
	},
	studentstatus.CircuitID: {
		ID:       studentstatus.CircuitID,
		Version:  studentstatus.Version,
		Template: studentstatus.Template,
		Assign:   studentstatus.Assign,
	},
	vaccination.CircuitID: {
		ID:       vaccination.CircuitID,
		Version:  vaccination.Version,
		Template: vaccination.Template,
		Assign:   vaccination.Assign,
	},
	employment.CircuitID: {
		ID:       employment.CircuitID,
		Version:  employment.Version,
		Template: employment.Template,
		Assign:   employment.Assign,
	},
	selective.CircuitID: {
		ID:       selective.CircuitID,
		Version:  selective.Version,
		Template: selective.Template,
		Assign:   selective.Assign,
	},
}
