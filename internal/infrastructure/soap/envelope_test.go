package soap

import (
	"strings"
	"testing"
)

func TestBuildEnvelope(t *testing.T) {
	data := Params{
		{Key: "login", Value: "admin"},
		{Key: "password", Value: "secret"},
	}

	body, err := BuildEnvelope("http://subreg.cz/wsdl", "Login", data)
	if err != nil {
		t.Fatalf("BuildEnvelope: %v", err)
	}

	got := string(body)
	for _, want := range []string{
		`<SOAP-ENV:Envelope`,
		`xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/"`,
		`<ns1:Login xmlns:ns1="http://subreg.cz/wsdl">`,
		`<data>`,
		`<login xsi:type="xsd:string">admin</login>`,
		`<password xsi:type="xsd:string">secret</password>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("envelope missing %s\n%s", want, got)
		}
	}

	// command arguments must stay in declaration order
	if strings.Index(got, "<login") > strings.Index(got, "<password") {
		t.Error("parameters out of order")
	}
}

func TestBuildEnvelope_NestedAndArrays(t *testing.T) {
	record := Params{
		{Key: "type", Value: "A"},
		{Key: "ttl", Value: 600},
	}
	data := Params{
		{Key: "domain", Value: "example.com"},
		{Key: "record", Value: record},
		{Key: "records", Value: []Params{record, record}},
	}

	body, err := BuildEnvelope("http://subreg.cz/wsdl", "Set_DNS_Zone", data)
	if err != nil {
		t.Fatalf("BuildEnvelope: %v", err)
	}

	got := string(body)
	for _, want := range []string{
		`<record><type xsi:type="xsd:string">A</type><ttl xsi:type="xsd:int">600</ttl></record>`,
		`<records><item>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("envelope missing %s\n%s", want, got)
		}
	}
	if strings.Count(got, "<item>") != 2 {
		t.Errorf("expected 2 array items\n%s", got)
	}
}

func TestBuildEnvelope_UnsupportedType(t *testing.T) {
	data := Params{{Key: "bad", Value: 3.14}}
	if _, err := BuildEnvelope("http://subreg.cz/wsdl", "Login", data); err == nil {
		t.Error("expected an error for unsupported parameter type")
	}
}

func TestParams_Set(t *testing.T) {
	params := Params{{Key: "domain", Value: "example.com"}}
	params = params.Set("ssid", "abc")
	params = params.Set("domain", "other.com")

	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}
	if params[0].Value != "other.com" {
		t.Errorf("Set must replace in place, got %v", params[0].Value)
	}
	if params[1].Key != "ssid" || params[1].Value != "abc" {
		t.Errorf("Set must append new keys, got %+v", params[1])
	}
}
