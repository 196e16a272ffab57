package vizserver

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	apphandler "github.com/pythonlearner1025/ChineseCrowdControl-sub001/vizserver/handler"
)

// VizService streams simulation frames to browser visualizations over a
// websocket. It knows nothing about the game beyond the frame topic.
type VizService struct {
	addr string
}

func NewVizService(addr string) *VizService {
	return &VizService{
		addr: addr,
	}
}

func (viz *VizService) ListenAndServe() error {

	logger := os.Stdout
	router := mux.NewRouter()

	router.Handle("/", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Home()),
	)).Methods("GET")

	router.Handle("/ws", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Websocket()),
	)).Methods("GET")

	log.Println("VIZ Listening on " + viz.addr)

	return http.ListenAndServe(viz.addr, router)
}
