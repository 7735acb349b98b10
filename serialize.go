package main

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Cirq JSON type tags.
const (
	cirqCircuit        = "Circuit"
	cirqMoment         = "Moment"
	cirqGateOperation  = "GateOperation"
	cirqLineQubit      = "LineQubit"
	cirqControlledGate = "ControlledGate"
)

// exponentTolerance is how close a ZPowGate exponent must be to a Clifford+T
// value to be read back as the named gate.
const exponentTolerance = 1e-12

type cirqJSONCircuit struct {
	CirqType string           `json:"cirq_type"`
	Moments  []cirqJSONMoment `json:"moments"`
}

type cirqJSONMoment struct {
	CirqType   string              `json:"cirq_type"`
	Operations []cirqJSONOperation `json:"operations"`
}

type cirqJSONOperation struct {
	CirqType string          `json:"cirq_type"`
	Gate     cirqJSONGate    `json:"gate"`
	Qubits   []cirqJSONQubit `json:"qubits"`
}

type cirqJSONQubit struct {
	CirqType string `json:"cirq_type"`
	X        int    `json:"x"`
}

type cirqJSONGate struct {
	CirqType    string        `json:"cirq_type"`
	Exponent    *float64      `json:"exponent,omitempty"`
	GlobalShift *float64      `json:"global_shift,omitempty"`
	Rads        *float64      `json:"rads,omitempty"`
	QidShape    []int         `json:"qid_shape,omitempty"`
	SubGate     *cirqJSONGate `json:"sub_gate,omitempty"`
	NumControls int           `json:"num_controls,omitempty"`

	ControlValues   [][]int `json:"control_values,omitempty"`
	ControlQidShape []int   `json:"control_qid_shape,omitempty"`
}

// addControl adds one |1⟩-valued qubit control to a ControlledGate.
func (g *cirqJSONGate) addControl() {
	g.NumControls++
	g.ControlValues = append(g.ControlValues, []int{1})
	g.ControlQidShape = append(g.ControlQidShape, 2)
}

func ptr(f float64) *float64 { return &f }

func powGate(cirqType string, exponent float64) cirqJSONGate {
	return cirqJSONGate{CirqType: cirqType, Exponent: ptr(exponent), GlobalShift: ptr(0)}
}

// cirqFixedGates maps parameterless gates to their Cirq representation.
var cirqFixedGates = map[string]cirqJSONGate{
	GateH:    powGate("HPowGate", 1),
	GateX:    {CirqType: "_PauliX", Exponent: ptr(1)},
	GateY:    {CirqType: "_PauliY", Exponent: ptr(1)},
	GateZ:    {CirqType: "_PauliZ", Exponent: ptr(1)},
	GateS:    powGate("ZPowGate", 0.5),
	GateSdg:  powGate("ZPowGate", -0.5),
	GateT:    powGate("ZPowGate", 0.25),
	GateTdg:  powGate("ZPowGate", -0.25),
	GateI:    {CirqType: "IdentityGate", QidShape: []int{2}},
	GateCNOT: powGate("CXPowGate", 1),
	GateCZ:   powGate("CZPowGate", 1),
	GateSWAP: powGate("SWAPPowGate", 1),
	GateCCX:  powGate("CCXPowGate", 1),
}

var cirqRotations = map[string]string{
	GateRX: "Rx",
	GateRY: "Ry",
	GateRZ: "Rz",
}

func toCirqGate(g Gate) (cirqJSONGate, error) {
	if cg, ok := cirqFixedGates[g.Name]; ok {
		return cg, nil
	}
	if t, ok := cirqRotations[g.Name]; ok {
		return cirqJSONGate{CirqType: t, Rads: ptr(g.Angle())}, nil
	}
	if g.Name == GateU1 {
		return powGate("ZPowGate", g.Angle()/math.Pi), nil
	}
	if strings.HasPrefix(g.Name, "C") && g.Arity() > 1 {
		sub, err := toCirqGate(Gate{Name: g.Name[1:], Params: g.Params})
		if err != nil {
			return cirqJSONGate{}, err
		}
		if sub.CirqType != cirqControlledGate {
			inner := sub
			sub = cirqJSONGate{CirqType: cirqControlledGate, SubGate: &inner}
		}
		sub.addControl()
		return sub, nil
	}
	return cirqJSONGate{}, errors.Errorf("gate %s has no cirq equivalent", g.Name)
}

func fromCirqGate(cg cirqJSONGate) (Gate, error) {
	exponent := 1.0
	if cg.Exponent != nil {
		exponent = *cg.Exponent
	}

	switch cg.CirqType {
	case "Rx", "Ry", "Rz":
		if cg.Rads == nil {
			return Gate{}, errors.Errorf("%s without rads", cg.CirqType)
		}
		return Gate{Name: strings.ToUpper(cg.CirqType), Params: []float64{*cg.Rads}}, nil
	case "ZPowGate":
		for _, name := range []string{GateZ, GateS, GateSdg, GateT, GateTdg} {
			if want := *cirqFixedGates[name].Exponent; math.Abs(exponent-want) < exponentTolerance {
				return Gate{Name: name}, nil
			}
		}
		return Gate{Name: GateU1, Params: []float64{exponent * math.Pi}}, nil
	case cirqControlledGate:
		if cg.SubGate == nil || cg.NumControls < 1 {
			return Gate{}, errors.New("controlled gate without sub_gate")
		}
		g, err := fromCirqGate(*cg.SubGate)
		if err != nil {
			return Gate{}, err
		}
		for range cg.NumControls {
			g = g.Controlled()
		}
		return g, nil
	}

	for name, fixed := range cirqFixedGates {
		if fixed.CirqType != cg.CirqType || fixed.CirqType == "ZPowGate" {
			continue
		}
		if math.Abs(exponent-1) > exponentTolerance {
			return Gate{}, errors.Errorf("%s with exponent %g is not supported", cg.CirqType, exponent)
		}
		return Gate{Name: name}, nil
	}
	return Gate{}, errors.Errorf("unsupported cirq gate %q", cg.CirqType)
}

// WriteCircuitJSON renders c in the JSON format read by cirq.read_json, one
// moment per ASAP layer.
func WriteCircuitJSON(c Circuit) ([]byte, error) {
	out := cirqJSONCircuit{CirqType: cirqCircuit, Moments: []cirqJSONMoment{}}
	for _, moment := range Moments(c) {
		jm := cirqJSONMoment{CirqType: cirqMoment}
		for _, op := range moment {
			gate, err := toCirqGate(op.Gate)
			if err != nil {
				return nil, errors.Wrapf(err, "serialize %s", op)
			}
			jo := cirqJSONOperation{CirqType: cirqGateOperation, Gate: gate}
			for _, q := range op.Qubits {
				jo.Qubits = append(jo.Qubits, cirqJSONQubit{CirqType: cirqLineQubit, X: q})
			}
			jm.Operations = append(jm.Operations, jo)
		}
		out.Moments = append(out.Moments, jm)
	}
	return json.MarshalIndent(out, "", "  ")
}

// ReadCircuitJSON parses the subset of Cirq JSON produced by WriteCircuitJSON.
// Operations are taken moment by moment. The register covers the highest
// LineQubit index seen.
func ReadCircuitJSON(data []byte) (Circuit, error) {
	var in cirqJSONCircuit
	if err := json.Unmarshal(data, &in); err != nil {
		return Circuit{}, errors.Wrap(err, "read circuit json")
	}
	if in.CirqType != cirqCircuit {
		return Circuit{}, errors.Errorf("read circuit json: expected %s, got %q", cirqCircuit, in.CirqType)
	}

	var ops []Operation
	for mi, m := range in.Moments {
		for oi, jo := range m.Operations {
			gate, err := fromCirqGate(jo.Gate)
			if err != nil {
				return Circuit{}, errors.Wrapf(err, "read circuit json: moment %d operation %d", mi, oi)
			}
			qubits := make([]int, len(jo.Qubits))
			for i, q := range jo.Qubits {
				if q.CirqType != cirqLineQubit {
					return Circuit{}, errors.Errorf("read circuit json: unsupported qubit type %q", q.CirqType)
				}
				qubits[i] = q.X
			}
			ops = append(ops, NewOperation(gate, qubits...))
		}
	}

	c := NewCircuit(0, ops...)
	if err := c.Validate(); err != nil {
		return Circuit{}, errors.Wrap(err, "read circuit json")
	}
	return c, nil
}

// OutputFileName builds "[prefix_]time_<t>_error_<e><ext>" with every '.' of
// the stem replaced by '_'.
func OutputFileName(prefix string, time, trotterError float64, ext string) string {
	stem := "time_" + formatFloat(time) + "_error_" + formatFloat(trotterError)
	if prefix != "" {
		stem = prefix + "_" + stem
	}
	return strings.ReplaceAll(stem, ".", "_") + ext
}
