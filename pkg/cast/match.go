package cast

// Matches reports whether s is eligible for conversion along e. It is pure
// delegation to e.Can and exists so the candidate target can be named at the
// call site through the edge value, which reads naturally when dispatching
// one source value over several candidate targets:
//
//	switch {
//	case cast.Matches(&v, BazFromBar):
//		...
//	case cast.Matches(&v, QuxFromBar):
//		...
//	}
func Matches[S, T any](s *S, e Edge[S, T]) bool {
	return e.Can(s)
}
