package soap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opslake/subregops/internal/domain"
)

const checkDomainResponse = `<?xml version="1.0" encoding="UTF-8"?>
<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">
 <SOAP-ENV:Body>
  <ns1:Check_DomainResponse xmlns:ns1="http://subreg.cz/wsdl">
   <response>
    <item><key>status</key><value>ok</value></item>
    <item><key>data</key><value>
     <item><key>avail</key><value>1</value></item>
    </value></item>
   </response>
  </ns1:Check_DomainResponse>
 </SOAP-ENV:Body>
</SOAP-ENV:Envelope>`

const faultResponse = `<?xml version="1.0" encoding="UTF-8"?>
<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">
 <SOAP-ENV:Body>
  <SOAP-ENV:Fault>
   <faultcode>SOAP-ENV:Server</faultcode>
   <faultstring>Internal Error</faultstring>
  </SOAP-ENV:Fault>
 </SOAP-ENV:Body>
</SOAP-ENV:Envelope>`

func TestClient_Call(t *testing.T) {
	var gotAction, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAction = r.Header.Get("SOAPAction")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(checkDomainResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL, "http://subreg.cz/wsdl")
	value, err := client.Call(context.Background(), "Check_Domain", Params{{Key: "domain", Value: "example.com"}})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	if value.Get("status").String() != "ok" {
		t.Errorf("status = %q", value.Get("status").String())
	}
	if value.Get("data", "avail").Int() != 1 {
		t.Errorf("data.avail = %d", value.Get("data", "avail").Int())
	}

	if gotAction != `"http://subreg.cz/wsdl#Check_Domain"` {
		t.Errorf("SOAPAction = %s", gotAction)
	}
	if gotContentType != `text/xml; charset="utf-8"` {
		t.Errorf("Content-Type = %s", gotContentType)
	}
}

func TestClient_Call_Fault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(faultResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL, "http://subreg.cz/wsdl")
	_, err := client.Call(context.Background(), "Check_Domain", nil)

	var fault *Fault
	if !errors.As(err, &fault) {
		t.Fatalf("expected *Fault, got %v", err)
	}
	if fault.Code != "SOAP-ENV:Server" || fault.String != "Internal Error" {
		t.Errorf("fault = %+v", fault)
	}
	if errors.Is(err, domain.ErrTransient) {
		t.Error("soap faults must not be marked transient")
	}
}

func TestClient_Call_ServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "http://subreg.cz/wsdl")
	_, err := client.Call(context.Background(), "Check_Domain", nil)
	if !errors.Is(err, domain.ErrTransient) {
		t.Errorf("HTTP 5xx must be transient, got %v", err)
	}
}

func TestClient_Call_ClientErrorIsNotTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "http://subreg.cz/wsdl")
	_, err := client.Call(context.Background(), "Check_Domain", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, domain.ErrTransient) {
		t.Error("HTTP 4xx must not be transient")
	}
}

func TestClient_Call_ConnectionRefusedIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "http://subreg.cz/wsdl")
	_, err := client.Call(context.Background(), "Check_Domain", nil)
	if !errors.Is(err, domain.ErrTransient) {
		t.Errorf("network errors must be transient, got %v", err)
	}
}
