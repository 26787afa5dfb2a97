package rpc

import (
	"net"
	"net/rpc"

	"github.com/yaegerbomb42/famgame/logger"
	"github.com/yaegerbomb42/famgame/models"
	"github.com/yaegerbomb42/famgame/room"
	"github.com/yaegerbomb42/famgame/services"
)

// Server manages the admin RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins serving RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes read-only operational state over net/rpc.
type AdminService struct {
	rooms   *room.Manager
	records *services.RecordService
}

func NewAdminService(rooms *room.Manager, records *services.RecordService) *AdminService {
	return &AdminService{rooms: rooms, records: records}
}

type RoomStatsArgs struct{}

type RoomStatsReply struct {
	Rooms []room.Stats
}

func (a *AdminService) RoomStats(args *RoomStatsArgs, reply *RoomStatsReply) error {
	reply.Rooms = a.rooms.RoomStats()
	return nil
}

type RecentRecordsArgs struct {
	RoomCode string
	Limit    int
}

type RecentRecordsReply struct {
	Records []models.GameRecord
}

func (a *AdminService) RecentRecords(args *RecentRecordsArgs, reply *RecentRecordsReply) error {
	records, err := a.records.RecentGameRecords(args.RoomCode, args.Limit)
	if err != nil {
		return err
	}
	reply.Records = records
	return nil
}
