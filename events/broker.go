package events

// Message is one event published on a topic.
type Message struct {
	Topic string
	Body  string
}

type Subscription struct {
	Topic string
	// C is closed when the subscription is dropped or the broker closes.
	C  <-chan Message
	ch chan Message
}

type subscribeReq struct {
	sub  *Subscription
	done chan struct{}
}

// Broker fans messages out to the subscribers of a topic. All subscriber
// state is owned by a single goroutine; callers talk to it over channels.
// A subscriber whose buffer is full when a message arrives is dropped.
type Broker struct {
	buffer      int
	subscribe   chan subscribeReq
	unsubscribe chan subscribeReq
	publish     chan Message
	quit        chan struct{}
	stopped     chan struct{}
}

func NewBroker(buffer int) (b *Broker) {
	b = &Broker{
		buffer:      buffer,
		subscribe:   make(chan subscribeReq),
		unsubscribe: make(chan subscribeReq),
		publish:     make(chan Message),
		quit:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
	go b.run()
	return
}

func (b *Broker) run() {
	var (
		topics = make(map[string]map[*Subscription]struct{})
	)
	drop := func(sub *Subscription) {
		if subs, ok := topics[sub.Topic]; ok {
			if _, ok = subs[sub]; ok {
				delete(subs, sub)
				close(sub.ch)
			}
			if len(subs) == 0 {
				delete(topics, sub.Topic)
			}
		}
	}
	defer close(b.stopped)
	for {
		select {
		case req := <-b.subscribe:
			if topics[req.sub.Topic] == nil {
				topics[req.sub.Topic] = make(map[*Subscription]struct{})
			}
			topics[req.sub.Topic][req.sub] = struct{}{}
			close(req.done)
		case req := <-b.unsubscribe:
			drop(req.sub)
			close(req.done)
		case msg := <-b.publish:
			for sub := range topics[msg.Topic] {
				select {
				case sub.ch <- msg:
				default:
					drop(sub)
				}
			}
		case <-b.quit:
			for _, subs := range topics {
				for sub := range subs {
					close(sub.ch)
				}
			}
			return
		}
	}
}

// Subscribe registers on topic. Messages published after Subscribe returns
// are delivered in publish order.
func (b *Broker) Subscribe(topic string) *Subscription {
	var (
		ch  = make(chan Message, b.buffer)
		sub = &Subscription{Topic: topic, C: ch, ch: ch}
		req = subscribeReq{sub: sub, done: make(chan struct{})}
	)
	select {
	case b.subscribe <- req:
		<-req.done
	case <-b.stopped:
		close(ch)
	}
	return sub
}

func (b *Broker) Unsubscribe(sub *Subscription) {
	var (
		req = subscribeReq{sub: sub, done: make(chan struct{})}
	)
	select {
	case b.unsubscribe <- req:
		<-req.done
	case <-b.stopped:
	}
}

// Publish hands msg to the broker; it is a no-op after Close.
func (b *Broker) Publish(topic, body string) {
	select {
	case b.publish <- Message{Topic: topic, Body: body}:
	case <-b.stopped:
	}
}

// Close stops the broker and closes every subscriber channel.
func (b *Broker) Close() {
	select {
	case <-b.stopped:
		return
	default:
	}
	select {
	case b.quit <- struct{}{}:
	case <-b.stopped:
	}
	<-b.stopped
}
