package handler

import (
	"net/http"
)

func Home() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<h2>Welcome on CROWD VIZ SERVER !</h2>"))
		w.Write([]byte("<a href='/ws'>frame stream (websocket)</a><br />"))
	}
}
