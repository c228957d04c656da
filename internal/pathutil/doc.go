// Package pathutil builds record field paths such as "address[0].place".
//
// The primary type is [PathBuilder], which uses push/pop semantics to build
// paths incrementally without allocating intermediate strings. A recursive
// walk pushes a segment on the way down and pops it on the way back up;
// the path is only materialized when a violation is reported.
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("series")
//	path.PushIndex(0)
//	path.Child("name") // "series[0].name"
package pathutil
