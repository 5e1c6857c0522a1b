//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestStub_New(t *testing.T) {
	_, err := New()
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("New() error = %v, want ErrOCRNotEnabled", err)
	}
}

func TestStub_Methods(t *testing.T) {
	var c *Client

	if err := c.Close(); err != nil {
		t.Errorf("Close() on nil client = %v, want nil", err)
	}

	c = &Client{}
	if _, err := c.RecognizeImage(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeImage() error = %v, want ErrOCRNotEnabled", err)
	}
	if _, err := c.RecognizeHOCR(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeHOCR() error = %v, want ErrOCRNotEnabled", err)
	}
	if err := c.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage() error = %v, want ErrOCRNotEnabled", err)
	}
}
