package event

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// TestNewBus 测试总线初始化后没有任何订阅
func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil || bus.handlers == nil {
		t.Fatal("NewBus() 未正确初始化")
	}
	if len(bus.handlers[EventJump]) != 0 {
		t.Errorf("新总线不应有 %s 订阅者", EventJump)
	}
}

// TestPublishJumpEvent 测试起跳事件的数据原样送达
func TestPublishJumpEvent(t *testing.T) {
	bus := NewBus()
	var got JumpEvent
	bus.Subscribe(EventJump, func(raw any) {
		got = raw.(JumpEvent)
	})

	sent := JumpEvent{At: 120 * time.Millisecond, Position: mgl64.Vec3{1, 0, 2}, Velocity: 4.43}
	bus.Publish(EventJump, sent)

	if got != sent {
		t.Errorf("收到 %+v, 期望 %+v", got, sent)
	}
}

// TestPublishWithoutSubscribers 测试无人订阅的落地事件不会 panic
func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish(EventLand, LandEvent{Airtime: time.Second})
}

// TestPoseSubscribers 测试同一事件的多个订阅者都被调用
func TestPoseSubscribers(t *testing.T) {
	bus := NewBus()
	var heights []float64
	for i := 0; i < 3; i++ {
		bus.Subscribe(EventPose, func(raw any) {
			heights = append(heights, raw.(PoseEvent).Height)
		})
	}

	bus.Publish(EventPose, PoseEvent{Crouching: true, Height: 1, CenterY: 0.5})

	if len(heights) != 3 {
		t.Fatalf("handler 被调用 %d 次, 期望 3 次", len(heights))
	}
	for i, h := range heights {
		if h != 1 {
			t.Errorf("第 %d 个 handler 收到高度 %v, 期望 1", i, h)
		}
	}
}

// TestEventNamesIsolated 测试不同事件名互不干扰
func TestEventNamesIsolated(t *testing.T) {
	bus := NewBus()
	var jumps, slides int
	bus.Subscribe(EventJump, func(any) { jumps++ })
	bus.Subscribe(EventSlide, func(any) { slides++ })

	bus.Publish(EventJump, JumpEvent{})
	bus.Publish(EventJump, JumpEvent{})

	if jumps != 2 {
		t.Errorf("jump handler 被调用 %d 次, 期望 2 次", jumps)
	}
	if slides != 0 {
		t.Errorf("slide handler 不应该被调用, 实际 %d 次", slides)
	}
}

// TestConcurrentSubscribeAndPublish 测试并发订阅与发布的线程安全性
func TestConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	var landings atomic.Int64
	bus.Subscribe(EventLand, func(any) { landings.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(EventLand, LandEvent{At: time.Duration(i) * time.Millisecond})
		}()
	}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Subscribe(EventLand, func(any) { landings.Add(1) })
		}()
	}
	wg.Wait()

	if landings.Load() < 100 {
		t.Errorf("至少应收到 100 次落地事件, 实际 %d 次", landings.Load())
	}
}

// TestPublishOrder 测试 handler 按订阅顺序同步执行
func TestPublishOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		bus.Subscribe(EventPose, func(event any) {
			order = append(order, i)
		})
	}

	bus.Publish(EventPose, PoseEvent{Crouching: true})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("执行顺序 = %v, 期望 [1 2 3]", order)
	}
}

// TestHandlerPanicRecovered 测试 handler panic 不影响后续 handler
func TestHandlerPanicRecovered(t *testing.T) {
	bus := NewBus()
	called := false
	bus.Subscribe(EventSlide, func(event any) {
		panic("boom")
	})
	bus.Subscribe(EventSlide, func(event any) {
		called = true
	})

	bus.Publish(EventSlide, SlideEvent{Sliding: true})

	if !called {
		t.Error("panic 之后的 handler 仍应被调用")
	}
}

// TestSubscribeAll 测试一次订阅多个事件
func TestSubscribeAll(t *testing.T) {
	bus := NewBus()
	var names []string
	bus.SubscribeAll(func(event any) {
		switch event.(type) {
		case JumpEvent:
			names = append(names, EventJump)
		case LandEvent:
			names = append(names, EventLand)
		}
	}, EventJump, EventLand)

	bus.Publish(EventJump, JumpEvent{Velocity: 4.43})
	bus.Publish(EventLand, LandEvent{})
	bus.Publish(EventPose, PoseEvent{})

	if len(names) != 2 || names[0] != EventJump || names[1] != EventLand {
		t.Errorf("收到事件 = %v, 期望 [%s %s]", names, EventJump, EventLand)
	}
}
