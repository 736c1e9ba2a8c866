package ssh

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/opslake/subregops/internal/domain"
)

// Client is a password-authenticated SSH connection to the backup host.
// Unknown host keys are recorded on first use; a changed key is always
// rejected.
type Client struct {
	client *ssh.Client
}

func NewClient(host string, port int, user, password string) (*Client, error) {
	if port == 0 {
		port = 22
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
	}
	knownHosts := filepath.Join(homeDir, ".ssh", "known_hosts")

	hostKeyCallback, err := createHostKeyCallback(knownHosts)
	if err != nil {
		return nil, fmt.Errorf("create host key callback: %w", err)
	}

	config := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
		},
		HostKeyCallback: hostKeyCallback,
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrBackupConnectFailed, addr, err)
	}

	return &Client{client: client}, nil
}

func createHostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	if _, err := os.Stat(knownHostsPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(knownHostsPath), 0o700); err != nil {
			return nil, err
		}
		if err := os.WriteFile(knownHostsPath, []byte{}, 0o600); err != nil {
			return nil, err
		}
	}

	callback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, err
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := callback(hostname, remote, key)
		if err == nil {
			return nil
		}

		keyErr, ok := err.(*knownhosts.KeyError)
		if !ok {
			return err
		}

		if len(keyErr.Want) > 0 {
			return fmt.Errorf("host key mismatch for %s: possible MITM attack", hostname)
		}

		line := knownhosts.Line([]string{hostname}, key)
		f, err := os.OpenFile(knownHostsPath, os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open known_hosts: %w", err)
		}
		defer f.Close()
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("write known_hosts: %w", err)
		}
		return nil
	}, nil
}

func (c *Client) Raw() *ssh.Client {
	return c.client
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
