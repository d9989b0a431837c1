package reports

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"gearhr/internal/domain/apperr"
	cryptoutil "gearhr/internal/platform/crypto"
)

type SavedPayslip struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Encrypted bool   `json:"encrypted"`
}

// Service writes generated payslips under dir, sealed when crypto is
// configured.
type Service struct {
	dir    string
	crypto *cryptoutil.Service
}

func NewService(dir string, crypto *cryptoutil.Service) *Service {
	return &Service{dir: dir, crypto: crypto}
}

func (s *Service) SavePayslip(p Payslip) (SavedPayslip, error) {
	var buf bytes.Buffer
	if err := RenderPayslipPDF(&buf, p); err != nil {
		return SavedPayslip{}, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return SavedPayslip{}, err
	}

	saved := SavedPayslip{ID: uuid.NewString()}
	data := buf.Bytes()
	saved.Path = filepath.Join(s.dir, saved.ID+".pdf")
	if s.crypto != nil && s.crypto.Configured() {
		sealed, err := s.crypto.Encrypt(data)
		if err != nil {
			return SavedPayslip{}, err
		}
		data = sealed
		saved.Path += ".enc"
		saved.Encrypted = true
	}
	if err := os.WriteFile(saved.Path, data, 0o600); err != nil {
		return SavedPayslip{}, err
	}
	return saved, nil
}

// OpenPayslip returns the PDF bytes of a previously saved payslip.
func (s *Service) OpenPayslip(id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.Invalid("payslipId", "must be a UUID")
	}
	sealedPath := filepath.Join(s.dir, id+".pdf.enc")
	data, err := os.ReadFile(sealedPath)
	if err == nil {
		if s.crypto == nil || !s.crypto.Configured() {
			return nil, fmt.Errorf("payslip %s is encrypted and no key is configured", id)
		}
		return s.crypto.Decrypt(data)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	data, err = os.ReadFile(filepath.Join(s.dir, id+".pdf"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperr.NotFound("payslip", id)
	}
	return data, err
}
