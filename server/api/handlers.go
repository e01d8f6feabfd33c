package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/didwallet/zk-disclosure/credential"
	"github.com/didwallet/zk-disclosure/disclosure"
	"github.com/didwallet/zk-disclosure/engine"
	gnarkprover "github.com/didwallet/zk-disclosure/prover/gnark"
	"github.com/didwallet/zk-disclosure/schema"
)

// Server handles HTTP requests for disclosure proof operations.
type Server struct {
	engine   *engine.Engine
	verifier *engine.Verifier
}

// NewServer creates a new HTTP server around a proof engine.
func NewServer(eng *engine.Engine, verifier *engine.Verifier) *Server {
	return &Server{
		engine:   eng,
		verifier: verifier,
	}
}

// ==== Request/Response Types ====

// GenerateResponse carries a generated proof and its transport renderings.
type GenerateResponse struct {
	Proof        ProofJSON `json:"proof"`
	ProofHash    string    `json:"proof_hash"`
	PrivacyLevel string    `json:"privacy_level"`
	Timestamp    time.Time `json:"timestamp"`
}

// ProofJSON is the wire form of a proof.
type ProofJSON struct {
	ProofType      credential.ProofType `json:"proof_type"`
	ProofData      string               `json:"proof_data"` // base64 encoded
	PublicInputs   []string             `json:"public_inputs"`
	CredentialHash string               `json:"credential_hash"`
	CreatedAt      int64                `json:"created_at"`
	Nonce          string               `json:"nonce"`
}

// CheckRequest asks for a structural pre-check of a proof.
type CheckRequest struct {
	Proof ProofJSON `json:"proof"`
}

// CheckResponse reports the structural check result.
type CheckResponse struct {
	Valid     bool      `json:"valid"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SchemaResponse describes a credential type's field catalog.
type SchemaResponse struct {
	CredentialType credential.Type          `json:"credential_type"`
	Fields         []schema.FieldDefinition `json:"fields"`
	FieldCount     int                      `json:"field_count"`
}

// CircuitInfoResponse describes one proving circuit.
type CircuitInfoResponse struct {
	Name    string `json:"name"`
	Version uint   `json:"version"`
}

// CircuitListResponse lists the proving circuits.
type CircuitListResponse struct {
	Circuits []CircuitInfoResponse `json:"circuits"`
	Count    int                   `json:"count"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ==== Handlers ====

// HandleHealth handles health check requests.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// HandleListCircuits lists all proving circuits.
func (s *Server) HandleListCircuits(w http.ResponseWriter, r *http.Request) {
	circuits := make([]CircuitInfoResponse, 0, len(gnarkprover.Circuits))
	for _, spec := range gnarkprover.Circuits {
		circuits = append(circuits, CircuitInfoResponse{Name: spec.ID, Version: spec.Version})
	}
	respondJSON(w, http.StatusOK, CircuitListResponse{Circuits: circuits, Count: len(circuits)})
}

// HandleGetSchema returns the field catalog for a credential type.
func (s *Server) HandleGetSchema(w http.ResponseWriter, r *http.Request) {
	credType := credential.Type(chi.URLParam(r, "type"))
	fields := schema.FieldsFor(credType)
	respondJSON(w, http.StatusOK, SchemaResponse{
		CredentialType: credType,
		Fields:         fields,
		FieldCount:     len(fields),
	})
}

// HandleGenerate handles proof generation requests.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req engine.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_json",
			fmt.Sprintf("failed to parse request: %v", err))
		return
	}
	defer r.Body.Close()

	result, err := s.engine.Generate(r.Context(), &req)
	if err != nil {
		status, code := classify(err)
		respondError(w, status, code, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, GenerateResponse{
		Proof:        toProofJSON(&result.Proof),
		ProofHash:    result.ProofHash.String(),
		PrivacyLevel: string(disclosure.Privacy(req.Disclose)),
		Timestamp:    time.Now(),
	})
}

// HandleCheck handles structural pre-check requests.
func (s *Server) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_json",
			fmt.Sprintf("failed to parse request: %v", err))
		return
	}
	defer r.Body.Close()

	proof, err := fromProofJSON(&req.Proof)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_proof", err.Error())
		return
	}

	resp := CheckResponse{Timestamp: time.Now()}
	if checkErr := s.verifier.Check(proof); checkErr != nil {
		resp.Message = checkErr.Error()
	} else {
		resp.Valid = true
		resp.Message = "proof structure is valid"
	}
	respondJSON(w, http.StatusOK, resp)
}

// ==== Helper Functions ====

func toProofJSON(p *engine.Proof) ProofJSON {
	return ProofJSON{
		ProofType:      p.ProofType,
		ProofData:      p.ProofDataBase64(),
		PublicInputs:   p.PublicInputsHex(),
		CredentialHash: p.CredentialHash.String(),
		CreatedAt:      p.CreatedAt,
		Nonce:          p.Nonce.String(),
	}
}

func fromProofJSON(in *ProofJSON) (*engine.Proof, error) {
	proofData, err := base64.StdEncoding.DecodeString(in.ProofData)
	if err != nil {
		return nil, fmt.Errorf("invalid proof data encoding: %w", err)
	}
	credHash, err := credential.ParseHash(in.CredentialHash)
	if err != nil {
		return nil, fmt.Errorf("invalid credential hash: %w", err)
	}
	nonceHash, err := credential.ParseHash(in.Nonce)
	if err != nil {
		return nil, fmt.Errorf("invalid nonce: %w", err)
	}

	publicInputs := make([][]byte, len(in.PublicInputs))
	for i, hexInput := range in.PublicInputs {
		parsed, err := credential.ParseHash(hexInput)
		if err != nil {
			return nil, fmt.Errorf("invalid public input %d: %w", i, err)
		}
		publicInputs[i] = parsed.Bytes()
	}

	return &engine.Proof{
		ProofType:      in.ProofType,
		ProofData:      proofData,
		PublicInputs:   publicInputs,
		CredentialHash: credHash,
		CreatedAt:      in.CreatedAt,
		Nonce:          nonceHash,
	}, nil
}

// classify maps pipeline errors onto HTTP status codes following the error
// taxonomy: input errors 400, state errors 409, infrastructure 502/503/504.
func classify(err error) (int, string) {
	var notActive *engine.CredentialNotActiveError
	var incompatible *engine.IncompatibleProofTypeError
	var outOfRange *disclosure.IndexOutOfRangeError
	var tooLarge *disclosure.FieldIndexTooLargeError
	var invalidField *engine.InvalidFieldValueError
	var keyUnavailable *engine.ProvingKeyUnavailableError
	var generation *engine.GenerationFailedError

	switch {
	case errors.Is(err, disclosure.ErrEmptyDisclosure):
		return http.StatusBadRequest, "empty_disclosure"
	case errors.Is(err, disclosure.ErrTooManyFields):
		return http.StatusBadRequest, "too_many_fields"
	case errors.As(err, &outOfRange):
		return http.StatusBadRequest, "index_out_of_range"
	case errors.As(err, &tooLarge):
		return http.StatusBadRequest, "field_index_too_large"
	case errors.As(err, &invalidField):
		return http.StatusBadRequest, "invalid_field_value"
	case errors.As(err, &incompatible):
		return http.StatusBadRequest, "incompatible_proof_type"
	case errors.As(err, &notActive):
		return http.StatusConflict, "credential_not_active"
	case errors.Is(err, engine.ErrCredentialExpired):
		return http.StatusConflict, "credential_expired"
	case errors.As(err, &keyUnavailable):
		return http.StatusServiceUnavailable, "proving_key_unavailable"
	case errors.Is(err, engine.ErrProofTimeout):
		return http.StatusGatewayTimeout, "proof_generation_timeout"
	case errors.As(err, &generation):
		return http.StatusBadGateway, "proof_generation_failed"
	default:
		return http.StatusBadRequest, "invalid_request"
	}
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	})
}
