package sqlparam

import "sync"

// windowPool reuses encode windows for the counting pre-pass. Those buffers
// live only for the duration of a constructor call, so pooling them avoids
// two allocations per large parameter. Emit-phase cursors own their buffers
// outright instead: a parameter may be abandoned half-drained at any time
// and must carry no cleanup obligations.
var windowPool = sync.Pool{
	New: func() any {
		b := make([]byte, WINDOW_SIZE)
		return &b
	},
}
