// Package dict loads the Diameter definitions resource: the symbolic
// name <-> numeric code and type mapping for commands and AVPs. It is
// loaded once at startup and read-only afterwards; serving requests
// without it is impossible, so load failures are fatal to the caller.
package dict

import (
	_ "embed"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hsdfat8/diam-peer/models_base"
)

// AVPDefinition describes one attribute from the dictionary.
type AVPDefinition struct {
	Name      string // e.g. "Origin-Host"
	Code      uint32
	VendorID  uint32 // 0 for IETF AVPs
	Type      models_base.TypeID
	TypeName  string // e.g. "DiameterIdentity"
	Mandatory bool   // M-bit
}

// CommandDefinition describes one command from the dictionary.
type CommandDefinition struct {
	Name  string // e.g. "Capabilities-Exchange"
	Short string // e.g. "CE"
	Code  uint32
}

type avpKey struct {
	code     uint32
	vendorID uint32
}

// Dictionary is the parsed definitions resource. Immutable after Load;
// safe for unsynchronized concurrent reads.
type Dictionary struct {
	avpByCode map[avpKey]*AVPDefinition
	avpByName map[string]*AVPDefinition
	cmdByCode map[uint32]*CommandDefinition
	cmdByName map[string]*CommandDefinition
}

type xmlAVP struct {
	Name      string `xml:"name,attr"`
	Code      uint32 `xml:"code,attr"`
	VendorID  uint32 `xml:"vendor-id,attr"`
	Type      string `xml:"type,attr"`
	Mandatory string `xml:"mandatory,attr"`
}

type xmlCommand struct {
	Name  string `xml:"name,attr"`
	Short string `xml:"short,attr"`
	Code  uint32 `xml:"code,attr"`
}

type xmlDictionary struct {
	XMLName  xml.Name     `xml:"dictionary"`
	Commands []xmlCommand `xml:"command"`
	AVPs     []xmlAVP     `xml:"avp"`
}

//go:embed basedict.xml
var baseDictionary []byte

// Default returns a dictionary built from the embedded base-protocol
// definitions.
func Default() (*Dictionary, error) {
	return Load(strings.NewReader(string(baseDictionary)))
}

// LoadFile loads a dictionary from an XML definitions file.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary %s: %w", path, err)
	}
	return d, nil
}

// Load parses an XML definitions resource.
func Load(r io.Reader) (*Dictionary, error) {
	var doc xmlDictionary
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary: %w", err)
	}

	d := &Dictionary{
		avpByCode: make(map[avpKey]*AVPDefinition, len(doc.AVPs)),
		avpByName: make(map[string]*AVPDefinition, len(doc.AVPs)),
		cmdByCode: make(map[uint32]*CommandDefinition, len(doc.Commands)),
		cmdByName: make(map[string]*CommandDefinition, len(doc.Commands)),
	}

	for _, c := range doc.Commands {
		if c.Name == "" || c.Code == 0 {
			return nil, fmt.Errorf("invalid command definition %q (code %d)", c.Name, c.Code)
		}
		if _, dup := d.cmdByCode[c.Code]; dup {
			return nil, fmt.Errorf("duplicate command code %d", c.Code)
		}
		if _, dup := d.cmdByName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate command name %q", c.Name)
		}
		cmd := &CommandDefinition{Name: c.Name, Short: c.Short, Code: c.Code}
		d.cmdByCode[c.Code] = cmd
		d.cmdByName[c.Name] = cmd
	}

	for _, a := range doc.AVPs {
		if a.Name == "" || a.Code == 0 {
			return nil, fmt.Errorf("invalid avp definition %q (code %d)", a.Name, a.Code)
		}
		typeID, ok := models_base.Available[a.Type]
		if !ok {
			return nil, fmt.Errorf("avp %q has unknown type %q", a.Name, a.Type)
		}
		key := avpKey{code: a.Code, vendorID: a.VendorID}
		if _, dup := d.avpByCode[key]; dup {
			return nil, fmt.Errorf("duplicate avp code %d (vendor %d)", a.Code, a.VendorID)
		}
		if _, dup := d.avpByName[a.Name]; dup {
			return nil, fmt.Errorf("duplicate avp name %q", a.Name)
		}
		def := &AVPDefinition{
			Name:      a.Name,
			Code:      a.Code,
			VendorID:  a.VendorID,
			Type:      typeID,
			TypeName:  a.Type,
			Mandatory: a.Mandatory == "true" || a.Mandatory == "must",
		}
		d.avpByCode[key] = def
		d.avpByName[a.Name] = def
	}

	return d, nil
}

// AVPByCode looks up an AVP definition by code and vendor ID.
func (d *Dictionary) AVPByCode(code, vendorID uint32) (*AVPDefinition, bool) {
	def, ok := d.avpByCode[avpKey{code: code, vendorID: vendorID}]
	return def, ok
}

// AVPByName looks up an AVP definition by symbolic name.
func (d *Dictionary) AVPByName(name string) (*AVPDefinition, bool) {
	def, ok := d.avpByName[name]
	return def, ok
}

// CommandName resolves a command code to its symbolic name. Returns the
// empty string for codes the dictionary does not define.
func (d *Dictionary) CommandName(code uint32) string {
	if cmd, ok := d.cmdByCode[code]; ok {
		return cmd.Name
	}
	return ""
}

// CommandCode resolves a symbolic command name to its code.
func (d *Dictionary) CommandCode(name string) (uint32, bool) {
	if cmd, ok := d.cmdByName[name]; ok {
		return cmd.Code, true
	}
	return 0, false
}

// NumAVPs returns the number of AVP definitions loaded.
func (d *Dictionary) NumAVPs() int {
	return len(d.avpByName)
}

// NumCommands returns the number of command definitions loaded.
func (d *Dictionary) NumCommands() int {
	return len(d.cmdByName)
}
