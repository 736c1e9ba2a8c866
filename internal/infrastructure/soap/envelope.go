package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

const (
	envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	encodingNS = "http://schemas.xmlsoap.org/soap/encoding/"
	xsiNS      = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNS      = "http://www.w3.org/2001/XMLSchema"
)

// Param is one named argument of a command. Value may be a string, an int, a
// nested Params struct, or a []Params array of structs; anything else is
// rejected at encode time. Params preserve declaration order so envelopes
// are byte-stable.
type Param struct {
	Key   string
	Value interface{}
}

type Params []Param

// Set replaces an existing key or appends a new one.
func (p Params) Set(key string, value interface{}) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

// BuildEnvelope renders the request envelope for an RPC-style command with a
// single `data` struct argument, the calling convention the registrar
// endpoint expects.
func BuildEnvelope(namespace, command string, data Params) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)

	envStart := xml.StartElement{
		Name: xml.Name{Local: "SOAP-ENV:Envelope"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:SOAP-ENV"}, Value: envelopeNS},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNS},
			{Name: xml.Name{Local: "xmlns:xsd"}, Value: xsdNS},
			{Name: xml.Name{Local: "SOAP-ENV:encodingStyle"}, Value: encodingNS},
		},
	}
	if err := enc.EncodeToken(envStart); err != nil {
		return nil, err
	}

	bodyStart := xml.StartElement{Name: xml.Name{Local: "SOAP-ENV:Body"}}
	if err := enc.EncodeToken(bodyStart); err != nil {
		return nil, err
	}

	cmdStart := xml.StartElement{
		Name: xml.Name{Local: "ns1:" + command},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:ns1"}, Value: namespace},
		},
	}
	if err := enc.EncodeToken(cmdStart); err != nil {
		return nil, err
	}

	if err := encodeStruct(enc, "data", data); err != nil {
		return nil, err
	}

	for _, end := range []xml.EndElement{
		{Name: cmdStart.Name},
		{Name: bodyStart.Name},
		{Name: envStart.Name},
	} {
		if err := enc.EncodeToken(end); err != nil {
			return nil, err
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeStruct(enc *xml.Encoder, name string, params Params) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, p := range params {
		if err := encodeParam(enc, p.Key, p.Value); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

func encodeParam(enc *xml.Encoder, name string, value interface{}) error {
	switch v := value.(type) {
	case string:
		return encodeScalar(enc, name, "xsd:string", v)
	case int:
		return encodeScalar(enc, name, "xsd:int", strconv.Itoa(v))
	case Params:
		return encodeStruct(enc, name, v)
	case []Params:
		start := xml.StartElement{Name: xml.Name{Local: name}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, item := range v {
			if err := encodeStruct(enc, "item", item); err != nil {
				return err
			}
		}
		return enc.EncodeToken(xml.EndElement{Name: start.Name})
	default:
		return fmt.Errorf("unsupported parameter type %T for %s", value, name)
	}
}

func encodeScalar(enc *xml.Encoder, name, xsiType, text string) error {
	start := xml.StartElement{
		Name: xml.Name{Local: name},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xsi:type"}, Value: xsiType},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return err
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
