package server

import (
	"encoding/json"
	"net/http"
	netrpc "net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/yaegerbomb42/famgame/broadcast"
	"github.com/yaegerbomb42/famgame/config"
	"github.com/yaegerbomb42/famgame/logger"
	"github.com/yaegerbomb42/famgame/models"
	"github.com/yaegerbomb42/famgame/monitor"
	"github.com/yaegerbomb42/famgame/network"
	"github.com/yaegerbomb42/famgame/persistence"
	"github.com/yaegerbomb42/famgame/room"
	gamerpc "github.com/yaegerbomb42/famgame/rpc"
	"github.com/yaegerbomb42/famgame/scheduler"
	"github.com/yaegerbomb42/famgame/services"
	"github.com/yaegerbomb42/famgame/session"
)

type GameServer struct {
	httpAddr       string
	upgrader       websocket.Upgrader
	router         *mux.Router
	roomManager    *room.Manager
	sessionManager *session.Manager
	timers         *scheduler.Manager
	recordService  *services.RecordService
	monitor        *monitor.Monitor
	rpcServer      *gamerpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, db persistence.Database) *GameServer {
	s := &GameServer{
		httpAddr:       cfg.Server.HTTPAddress,
		sessionManager: session.NewManager(),
		timers:         scheduler.NewManager(),
		recordService:  services.NewRecordService(db),
		monitor:        monitor.NewMonitor("famgame"),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.roomManager = room.NewManager(s.timers, s.recordService, cfg.Room.MaxPlayers)
	s.roomManager.SetNotifier(broadcast.NewSessionBroadcaster(s.sessionManager))

	rpcServer, err := gamerpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	netrpc.Register(gamerpc.NewAdminService(s.roomManager, s.recordService))

	s.monitor.StartServer(cfg.Server.MetricsAddress)

	s.router = mux.NewRouter()
	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	logger.Log.Infof("Game server listening on %s", s.httpAddr)
	return http.ListenAndServe(s.httpAddr, s.router)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.timers.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.roomManager.Disconnect(sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecOnlinePlayers()
		s.monitor.SetActiveRooms(s.roomManager.Count())
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			msg, err := wsConn.ReadMessage()
			if err != nil {
				return
			}
			s.handleEvent(sess, msg)
		}
	}
}

func (s *GameServer) handleEvent(sess *session.Session, msg *network.Message) {
	start := time.Now()
	s.monitor.IncEventsReceived()

	var err error
	switch msg.Event {
	case network.EventCreateRoom:
		var req struct {
			Name string `json:"name"`
		}
		if err = json.Unmarshal(msg.Data, &req); err == nil {
			_, err = s.roomManager.CreateRoom(sess.GetID(), req.Name)
		}

	case network.EventJoinRoom:
		var req struct {
			Name   string `json:"name"`
			Code   string `json:"code"`
			Avatar string `json:"avatar"`
		}
		if err = json.Unmarshal(msg.Data, &req); err == nil {
			err = s.roomManager.JoinRoom(sess.GetID(), req.Code, req.Name, req.Avatar)
		}

	case network.EventLeaveRoom:
		s.roomManager.Disconnect(sess.GetID())

	case network.EventStartGame:
		if r, ok := s.roomManager.Find(sess.GetID()); ok {
			err = r.StartGameSelect(sess.GetID())
		}

	case network.EventVoteGame:
		var req struct {
			GameTag models.GameTag `json:"gameTag"`
		}
		if err = json.Unmarshal(msg.Data, &req); err == nil {
			if r, ok := s.roomManager.Find(sess.GetID()); ok {
				err = r.VoteGame(sess.GetID(), req.GameTag)
			}
		}

	case network.EventSelectGame:
		var req struct {
			GameTag models.GameTag `json:"gameTag"`
		}
		if err = json.Unmarshal(msg.Data, &req); err == nil {
			if r, ok := s.roomManager.Find(sess.GetID()); ok {
				err = r.SelectGame(sess.GetID(), req.GameTag)
			}
		}

	case network.EventBackToLobby:
		if r, ok := s.roomManager.Find(sess.GetID()); ok {
			err = r.BackToLobby(sess.GetID())
		}

	case network.EventNextRound:
		if r, ok := s.roomManager.Find(sess.GetID()); ok {
			err = r.NextRound(sess.GetID())
		}

	case network.EventSendChat:
		var req struct {
			Text string `json:"text"`
		}
		if err = json.Unmarshal(msg.Data, &req); err == nil {
			if r, ok := s.roomManager.Find(sess.GetID()); ok {
				err = r.Chat(sess.GetID(), req.Text)
			}
		}

	default:
		// Anything else is mini-game input for the caller's active game.
		if r, ok := s.roomManager.Find(sess.GetID()); ok {
			err = r.HandleInput(sess.GetID(), msg.Event, msg.Data)
		}
	}

	if err != nil {
		s.sendError(sess, err)
	}

	s.monitor.SetActiveRooms(s.roomManager.Count())
	s.monitor.ObserveEventLatency(time.Since(start))
}

func (s *GameServer) sendError(sess *session.Session, err error) {
	logger.Log.Debugw("rejected event", "session", sess.GetID(), "error", err)
	sess.Send(network.EventError, map[string]string{"message": err.Error()})
}
