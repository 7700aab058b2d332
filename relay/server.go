// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/websocket"
)

// Serve answers the messages of one connection in order until it closes
func (rl *Relay) Serve(ws *websocket.Conn) {
	defer ws.Close()
	ctx := ws.Request().Context()
	for {
		var msg []byte
		if err := websocket.Message.Receive(ws, &msg); err != nil {
			if !errors.Is(err, io.EOF) {
				rl.Log.Debug("connection closed", "err", err)
			}
			return
		}
		if err := websocket.Message.Send(ws, rl.Handle(ctx, msg)); err != nil {
			rl.Log.Error("send reply", "err", err)
			return
		}
	}
}

// Mux routes the socket at /ws. A non-empty staticDir is served at /.
func (rl *Relay) Mux(staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", websocket.Handler(rl.Serve))
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	return mux
}

// ListenAndServe serves the relay on bind until ctx is done
func (rl *Relay) ListenAndServe(ctx context.Context, bind, staticDir string) error {
	srv := &http.Server{Addr: bind, Handler: rl.Mux(staticDir), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		rl.Log.Info("relay listening", "bind", bind, "static", staticDir)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return fmt.Errorf("relay server: %w", err)
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("relay shutdown: %w", err)
		}
		return nil
	}
}
