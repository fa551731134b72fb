package web

import "encoding/json"

// inMessage is a client request: {"type":"direction","data":"up"} or
// {"type":"restart"}.
type inMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// outMessage is a server event: "frame" carries a core.Snapshot,
// "game_over" carries gameOverData.
type outMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type gameOverData struct {
	Score  int `json:"score"`
	Length int `json:"length"`
	Turns  int `json:"turns"`
}
