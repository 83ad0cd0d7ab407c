package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/openfds/fdskit/pkg/canon"
	"github.com/openfds/fdskit/pkg/casefile"
	"github.com/openfds/fdskit/pkg/namelist"
)

// maxSourceBytes bounds the size of an uploaded case document.
const maxSourceBytes = 16 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: false, Error: msg})
}

func decodeRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, map[string]string{"status": "ok"})
}

func (s *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, StatusResponse{
		Uptime:      time.Since(s.startTime).Truncate(time.Second).String(),
		KnownGroups: len(namelist.KnownGroups),
	})
}

func (s *Server) formatHandler(w http.ResponseWriter, r *http.Request) {
	defer s.observe("format", time.Now())

	var req FormatRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Source == "" {
		writeError(w, http.StatusBadRequest, "source is empty")
		return
	}

	res, err := canon.Canonicalize(req.Source, s.canonOptions(req.Strict))
	if err != nil {
		s.metrics.documentsTotal.WithLabelValues("format", "error").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.metrics.documentsTotal.WithLabelValues("format", "ok").Inc()
	s.metrics.recordsTotal.Add(float64(res.Records))
	s.metrics.warningsTotal.Add(float64(len(res.Warnings)))
	writeOK(w, FormatResponse{
		Text:     res.Text,
		Records:  res.Records,
		Warnings: res.Warnings,
	})
}

func (s *Server) parseHandler(w http.ResponseWriter, r *http.Request) {
	defer s.observe("parse", time.Now())

	var req ParseRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Source == "" {
		writeError(w, http.StatusBadRequest, "source is empty")
		return
	}

	doc, err := casefile.Split(req.Source)
	if err != nil {
		s.metrics.documentsTotal.WithLabelValues("parse", "error").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	nls, err := doc.Decode(req.Strict)
	if err != nil {
		s.metrics.documentsTotal.WithLabelValues("parse", "error").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := ParseResponse{Records: make([]RecordSummary, 0, len(nls))}
	var params int
	for i, nl := range nls {
		sum := RecordSummary{Label: nl.Label, Line: doc.Records[i].Line}
		for _, p := range nl.Params() {
			ps := ParamSummary{Label: p.Label}
			for _, v := range p.Values {
				ps.Values = append(ps.Values, v.Kind().String())
			}
			sum.Params = append(sum.Params, ps)
			params++
		}
		resp.Records = append(resp.Records, sum)
	}

	s.metrics.documentsTotal.WithLabelValues("parse", "ok").Inc()
	s.metrics.recordsTotal.Add(float64(len(nls)))
	s.metrics.paramsTotal.Add(float64(params))
	writeOK(w, resp)
}

func (s *Server) observe(handler string, start time.Time) {
	s.metrics.requestDuration.WithLabelValues(handler).Observe(time.Since(start).Seconds())
}
