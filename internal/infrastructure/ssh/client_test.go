package ssh

import (
	"crypto/ed25519"
	"crypto/rand"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

func generateHostKey(t *testing.T) ssh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("convert key: %v", err)
	}
	return sshPub
}

func TestCreateHostKeyCallback_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ssh", "known_hosts")

	if _, err := createHostKeyCallback(path); err != nil {
		t.Fatalf("createHostKeyCallback: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("known_hosts file was not created: %v", err)
	}
}

func TestHostKeyCallback_TrustOnFirstUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_hosts")
	addr := &net.TCPAddr{IP: net.ParseIP("192.0.2.1"), Port: 22}
	key := generateHostKey(t)

	callback, err := createHostKeyCallback(path)
	if err != nil {
		t.Fatalf("createHostKeyCallback: %v", err)
	}
	if err := callback("backup.example.com:22", addr, key); err != nil {
		t.Fatalf("first contact must be accepted and recorded: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(content), "backup.example.com") {
		t.Errorf("host not recorded:\n%s", content)
	}

	// a fresh callback reads the recorded key back and accepts it
	callback, err = createHostKeyCallback(path)
	if err != nil {
		t.Fatalf("createHostKeyCallback: %v", err)
	}
	if err := callback("backup.example.com:22", addr, key); err != nil {
		t.Errorf("recorded key must be accepted: %v", err)
	}
}

func TestHostKeyCallback_RejectsChangedKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_hosts")
	addr := &net.TCPAddr{IP: net.ParseIP("192.0.2.1"), Port: 22}

	callback, err := createHostKeyCallback(path)
	if err != nil {
		t.Fatalf("createHostKeyCallback: %v", err)
	}
	if err := callback("backup.example.com:22", addr, generateHostKey(t)); err != nil {
		t.Fatalf("first contact: %v", err)
	}

	callback, err = createHostKeyCallback(path)
	if err != nil {
		t.Fatalf("createHostKeyCallback: %v", err)
	}
	err = callback("backup.example.com:22", addr, generateHostKey(t))
	if err == nil {
		t.Fatal("a changed host key must be rejected")
	}
	if !strings.Contains(err.Error(), "host key mismatch") {
		t.Errorf("unexpected error: %v", err)
	}
}
