package serial_test

import (
	"fmt"
	"time"

	"github.com/fluidlevel/serial"
)

func Example() {
	received := make(chan struct{}, 1)
	session := serial.NewSession(serial.HandlerFuncs{
		Received: func() {
			select {
			case received <- struct{}{}:
			default:
			}
		},
		Failed: func(err error) {
			fmt.Println("session failed:", err)
		},
	})

	if err := session.Start(serial.DefaultPortConfig("/dev/ttyUSB0")); err != nil {
		fmt.Println("start error:", err)
		return
	}
	defer session.Join()

	session.WriteString("PING\n")

	select {
	case <-received:
		for {
			text, ok := session.TryRead()
			if !ok {
				break
			}
			fmt.Printf("received: %q\n", text)
		}
	case <-time.After(500 * time.Millisecond):
		fmt.Println("no response")
	}
}
