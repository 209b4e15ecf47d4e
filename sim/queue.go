// Implements the RepairQueue, which holds failed machines awaiting an adjuster.
// Machines are enqueued on failure and leave when an adjuster takes them.

package sim

import (
	"fmt"
	"strings"
)

// RepairQueue is a FIFO of failed machines. A machine is present at most
// once; that is guaranteed by machine state, not by the queue.
type RepairQueue struct {
	queue []MachineID
}

// Enqueue adds a machine to the back of the queue.
func (rq *RepairQueue) Enqueue(id MachineID) {
	rq.queue = append(rq.queue, id)
}

// Dequeue removes and returns the machine at the front of the queue.
// ok is false when the queue is empty.
func (rq *RepairQueue) Dequeue() (id MachineID, ok bool) {
	if len(rq.queue) == 0 {
		return NoMachine, false
	}
	id = rq.queue[0]
	rq.queue = rq.queue[1:]
	return id, true
}

// Len returns the number of machines waiting. It never mutates the queue.
func (rq *RepairQueue) Len() int {
	return len(rq.queue)
}

// Peek returns the machine at the front without removing it.
func (rq *RepairQueue) Peek() (MachineID, bool) {
	if len(rq.queue) == 0 {
		return NoMachine, false
	}
	return rq.queue[0], true
}

// Items returns the queue contents in arrival order.
// Callers MUST NOT append to or reslice the returned slice.
func (rq *RepairQueue) Items() []MachineID {
	return rq.queue
}

// Reset empties the queue.
func (rq *RepairQueue) Reset() {
	rq.queue = nil
}

func (rq *RepairQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range rq.queue {
		sb.WriteString(fmt.Sprint(int(id)))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
