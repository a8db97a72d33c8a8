package validator

// Custom turns a user check into a rule. A non-nil error becomes a
// CustomFailure whose message is err.Error(), recorded verbatim.
//
//	validator.Custom(func(v []int) error {
//	    if sum(v) > 100 {
//	        return errors.New("the total must not exceed 100.")
//	    }
//	    return nil
//	})
func Custom[T any](check func(value T) error) Rule[T] {
	return NewRule(func(value T) Failure {
		if err := check(value); err != nil {
			return NewCustomFailure(err.Error())
		}
		return nil
	})
}
