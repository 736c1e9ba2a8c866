package ssh

import (
	"fmt"
	"path"

	"github.com/pkg/sftp"

	"github.com/opslake/subregops/internal/domain"
)

// Uploader writes files onto the backup host over SFTP.
type Uploader struct {
	client *sftp.Client
}

func NewUploader(sshClient *Client) (*Uploader, error) {
	client, err := sftp.NewClient(sshClient.Raw())
	if err != nil {
		return nil, fmt.Errorf("%w: open sftp session: %v", domain.ErrBackupConnectFailed, err)
	}
	return &Uploader{client: client}, nil
}

// Upload writes content to remotePath, creating parent directories as
// needed.
func (u *Uploader) Upload(remotePath string, content []byte) error {
	if err := u.client.MkdirAll(path.Dir(remotePath)); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", domain.ErrBackupPushFailed, path.Dir(remotePath), err)
	}

	f, err := u.client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", domain.ErrBackupPushFailed, remotePath, err)
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrBackupPushFailed, remotePath, err)
	}
	return nil
}

func (u *Uploader) Close() error {
	return u.client.Close()
}
