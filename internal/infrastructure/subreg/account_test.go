package subreg

import (
	"context"
	"fmt"
	"testing"
)

func TestClient_ListPricelists(t *testing.T) {
	fake := newFakeRegistrar()
	fake.handleStatic("Pricelist", fmt.Sprintf("<item><key>pricelists</key><value>%s%s</value></item>",
		"<item>"+kv("id", "1")+kv("name", "standard")+kv("currency", "CZK")+kv("default", "1")+"</item>",
		"<item>"+kv("id", "2")+kv("name", "partner")+kv("currency", "EUR")+kv("default", "0")+"</item>"))

	client := newTestClient(t, fake)
	pricelists, err := client.ListPricelists(context.Background())
	if err != nil {
		t.Fatalf("ListPricelists: %v", err)
	}

	if len(pricelists) != 2 {
		t.Fatalf("expected 2 pricelists, got %d", len(pricelists))
	}
	if pricelists[0].Name != "standard" || pricelists[0].Currency != "CZK" || !pricelists[0].Default {
		t.Errorf("pricelists[0] = %+v", pricelists[0])
	}
	if pricelists[1].Default {
		t.Errorf("pricelists[1] must not be the default, got %+v", pricelists[1])
	}
}

func TestClient_ListDocuments(t *testing.T) {
	fake := newFakeRegistrar()
	fake.handleStatic("List_Documents", fmt.Sprintf("<item><key>documents</key><value>%s</value></item>",
		"<item>"+kv("id", "31")+kv("name", "id-card.pdf")+kv("type", "identification")+kv("filetype", "application/pdf")+"</item>"))

	client := newTestClient(t, fake)
	documents, err := client.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}

	if len(documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(documents))
	}
	doc := documents[0]
	if doc.ID != "31" || doc.Name != "id-card.pdf" || doc.Type != "identification" || doc.Filetype != "application/pdf" {
		t.Errorf("document = %+v", doc)
	}
}
