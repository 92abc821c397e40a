package server

import (
	"net/http"

	"connectrpc.com/connect"
)

const (
	ListCategoriesProcedure       = "/wordcoach.v1.VocabularyService/ListCategories"
	GetWordProcedure              = "/wordcoach.v1.VocabularyService/GetWord"
	GetSentenceExampleProcedure   = "/wordcoach.v1.AssistantService/GetSentenceExample"
	GetFeedbackProcedure          = "/wordcoach.v1.AssistantService/GetFeedback"
	GetFeedbackFromAudioProcedure = "/wordcoach.v1.AssistantService/GetFeedbackFromAudio"
)

// NewMux routes every procedure to its handler.
func NewMux(vocabularyHandler *VocabularyHandler, assistantHandler *AssistantHandler, opts ...connect.HandlerOption) *http.ServeMux {
	options := append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		// Recordings travel base64 encoded inside JSON.
		connect.WithReadMaxBytes(maxAudioBytes * 2),
	}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ListCategoriesProcedure, connect.NewUnaryHandler(ListCategoriesProcedure, vocabularyHandler.ListCategories, options...))
	mux.Handle(GetWordProcedure, connect.NewUnaryHandler(GetWordProcedure, vocabularyHandler.GetWord, options...))
	mux.Handle(GetSentenceExampleProcedure, connect.NewUnaryHandler(GetSentenceExampleProcedure, assistantHandler.GetSentenceExample, options...))
	mux.Handle(GetFeedbackProcedure, connect.NewUnaryHandler(GetFeedbackProcedure, assistantHandler.GetFeedback, options...))
	mux.Handle(GetFeedbackFromAudioProcedure, connect.NewUnaryHandler(GetFeedbackFromAudioProcedure, assistantHandler.GetFeedbackFromAudio, options...))
	return mux
}

// CORSMiddleware allows the web front-end at allowedOrigin to call the API.
func CORSMiddleware(allowedOrigin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
