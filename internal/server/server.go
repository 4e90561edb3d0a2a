package server

// Данный сервер просто объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей
type Server struct {
	DealServer
	SubscriberServer
}

func NewServer(
	dealServer DealServer,
	subscriberServer SubscriberServer,
) Server {
	return Server{
		DealServer:       dealServer,
		SubscriberServer: subscriberServer,
	}
}
