package server

import (
	"testing"

	"github.com/Meghana-05-02/RFP-System/internal/gemini"
)

func TestWriteTimeoutOutlastsModelCall(t *testing.T) {
	srv := newHTTPServer(8080, nil)

	if srv.WriteTimeout <= gemini.RequestTimeout {
		t.Errorf("WriteTimeout %v must exceed the model call bound %v, or slow extractions get cut off mid-response",
			srv.WriteTimeout, gemini.RequestTimeout)
	}
	if srv.Addr != ":8080" {
		t.Errorf("Addr = %q", srv.Addr)
	}
}
