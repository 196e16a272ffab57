package handler

import (
	"fmt"
	"log"
	"net/http"

	notify "github.com/bitly/go-notify"
	"github.com/gorilla/websocket"
)

// FrameEvent must match the topic the simulation server posts frames on.
const FrameEvent = "viz:message"

type wsincomingmessage struct {
	messageType int
	p           []byte
	err         error
}

func Websocket() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {

		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}

		defer c.Close()

		clientclosedsocket := make(chan bool)
		c.SetCloseHandler(func(code int, text string) error {
			clientclosedsocket <- true
			return nil
		})

		// Listen to messages incoming from viz; mandatory to notice when
		// the websocket is closed client side
		incomingmsg := make(chan wsincomingmessage)
		go func(client *websocket.Conn, ch chan wsincomingmessage) {
			for {
				messageType, p, err := client.ReadMessage()
				ch <- wsincomingmessage{messageType, p, err}
				if err != nil {
					return
				}
			}
		}(c, incomingmsg)

		// Listen to frame batches coming from the simulation server
		framechan := make(chan interface{})
		notify.Start(FrameEvent, framechan)
		defer notify.Stop(FrameEvent, framechan)

		for {
			select {
			case <-clientclosedsocket:
				{
					log.Println("<-clientclosedsocket")
					return
				}
			case msg := <-incomingmsg:
				{
					if msg.err != nil {
						// Read error means the socket is gone.
						return
					}
					// No incoming messages expected otherwise; keep draining.
				}
			case frame := <-framechan:
				{
					frameString, ok := frame.(string)
					if !ok {
						continue
					}

					c.WriteMessage(websocket.TextMessage, []byte(fmt.Sprintf("{\"type\":\"framebatch\", \"data\": %s}", frameString)))
				}
			}
		}
	}
}
