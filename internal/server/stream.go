package server

import (
	"fmt"
	"net/http"
	"time"

	"gocv.io/x/gocv"
)

const streamBoundary = "mudraframe"

// handleStream serves the annotated preview as multipart MJPEG, the format
// every browser renders natively in an <img> tag.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.frames == nil {
		writeError(w, http.StatusServiceUnavailable, "no video source")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+streamBoundary)
	w.WriteHeader(http.StatusOK)

	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		frame := s.frames.Frame()
		if frame == nil {
			continue
		}

		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		_, err = fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n",
			streamBoundary, buf.Len())
		if err == nil {
			_, err = w.Write(buf.GetBytes())
		}
		buf.Close()
		if err != nil {
			return
		}
		fmt.Fprint(w, "\r\n")
		flusher.Flush()
	}
}
