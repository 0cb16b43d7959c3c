package broker

import (
	"log"

	"github.com/nats-io/nats.go"
)

var conn *nats.Conn

// InitProducer connects to the NATS server. The service keeps running without a
// broker; publishing then degrades to a log line.
func InitProducer(natsURL string) error {
	var err error
	conn, err = nats.Connect(natsURL,
		nats.Name("tasknest-api"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return err
	}

	log.Printf("Connected to NATS at %s", natsURL)
	return nil
}

// Publish sends a message on the given subject.
func Publish(subject string, data []byte) error {
	if conn == nil {
		log.Printf("NATS producer is not initialized, dropping message on %s", subject)
		return nats.ErrConnectionClosed
	}

	if err := conn.Publish(subject, data); err != nil {
		log.Printf("Failed to publish message on %s: %v", subject, err)
		return err
	}

	return nil
}

// Subscribe delivers messages for the given subjects on a channel. The returned
// function unsubscribes and drains the channel.
func Subscribe(subjects []string) (chan *nats.Msg, func(), error) {
	if conn == nil {
		return nil, nil, nats.ErrConnectionClosed
	}

	messageChan := make(chan *nats.Msg, 64)
	subs := make([]*nats.Subscription, 0, len(subjects))

	for _, subject := range subjects {
		sub, err := conn.ChanSubscribe(subject, messageChan)
		if err != nil {
			for _, s := range subs {
				s.Unsubscribe()
			}
			return nil, nil, err
		}
		subs = append(subs, sub)
	}

	cancel := func() {
		for _, s := range subs {
			s.Unsubscribe()
		}
	}

	return messageChan, cancel, nil
}

// CloseProducer drains the connection.
func CloseProducer() {
	if conn != nil {
		conn.Drain()
		conn = nil
	}
}
