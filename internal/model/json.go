package model

import "encoding/json"

// jsonClass mirrors the wire shape of §6's JSON ingestion format:
//
//	{"class_type":..., "name":..., "pattern":..., "body": {...}}
type jsonClass struct {
	ClassType ClassKind       `json:"class_type"`
	Name      string          `json:"name"`
	Pattern   string          `json:"pattern,omitempty"`
	Body      jsonClassBody   `json:"body"`
}

type jsonClassBody struct {
	Supports     []Support            `json:"supports,omitempty"`
	Variables    map[string]*Variable `json:"variables,omitempty"`
	Compositions []string             `json:"compositions,omitempty"`
}

// jsonModel mirrors §6's top-level object: {"load_stmts":[...], "class_defs":{...}}.
type jsonModel struct {
	LoadStmts []string             `json:"load_stmts"`
	ClassDefs map[string]jsonClass `json:"class_defs"`
}

// MarshalJSON serialises m per spec §6, used both to emit and (via
// UnmarshalJSON) to re-ingest a model, and to support the round-trip
// property of spec §8 item 5.
func (m *Model) MarshalJSON() ([]byte, error) {
	jm := jsonModel{
		LoadStmts: make([]string, len(m.LoadStmts)),
		ClassDefs: make(map[string]jsonClass, len(m.ClassDefs)),
	}
	for i, ld := range m.LoadStmts {
		jm.LoadStmts[i] = ld.Path
	}
	for name, cls := range m.ClassDefs {
		jc := jsonClass{ClassType: cls.Kind, Name: cls.Name, Pattern: cls.Pattern}
		if cls.Body.Justification != nil {
			jc.Body.Variables = cls.Body.Justification.Variables
			jc.Body.Supports = cls.Body.Justification.SupportList()
		}
		if cls.Body.Composition != nil {
			jc.Body.Compositions = cls.Body.Composition.Compositions
		}
		jm.ClassDefs[name] = jc
	}
	return json.Marshal(jm)
}

// UnmarshalJSON is the alternate entry to the model builder described in
// spec §4.D: "accepts a pre-parsed JSON object mirroring the model shape".
// It does not traverse load statements (that is the loader's job).
func (m *Model) UnmarshalJSON(data []byte) error {
	var jm jsonModel
	if err := json.Unmarshal(data, &jm); err != nil {
		return err
	}
	m.LoadStmts = make([]LoadStatement, len(jm.LoadStmts))
	for i, p := range jm.LoadStmts {
		m.LoadStmts[i] = LoadStatement{Path: p}
	}
	m.ClassDefs = make(map[string]*Class, len(jm.ClassDefs))
	for name, jc := range jm.ClassDefs {
		cls := &Class{Kind: jc.ClassType, Name: jc.Name, Pattern: jc.Pattern}
		if jc.ClassType == Composition {
			cls.Body.Composition = &CompositionBody{Compositions: jc.Body.Compositions}
		} else {
			jb := NewJustificationBody()
			for vn, v := range jc.Body.Variables {
				if v.Name == "" {
					v.Name = vn
				}
				jb.AddVariable(v)
			}
			for _, s := range jc.Body.Supports {
				jb.AddSupport(s.Left, s.Right)
			}
			cls.Body.Justification = jb
		}
		m.ClassDefs[name] = cls
	}
	return nil
}
