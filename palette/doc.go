// Package palette assigns display colors to registered processes.
//
// An [Assigner] keeps a usage counter per rotation color and always hands out
// the least-used one, breaking ties by palette order, so colors stay balanced
// as processes register. Whether a process gets a fresh color or inherits one
// from its parent depends on the [style.Mode]:
//
//   - [style.Classic]: every process is [style.White].
//   - [style.Colored]: children of a sub-process inherit its color; main
//     processes and direct children of a main process get a fresh color.
//   - [style.Docker]: sub-processes inherit their parent's color; main
//     processes get a fresh color.
//
// The neutral colors ([style.White] and [style.Black]) are left out of the
// rotation unless [WithNeutralColors] is set.
package palette
