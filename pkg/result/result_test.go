package result

import "testing"

func TestCombineKeepsFirstSpecificError(t *testing.T) {
	tests := []struct {
		name    string
		current Code
		latest  Code
		want    Code
	}{
		{"success stays success", Success, Success, Success},
		{"success takes generic", Success, GenericError, GenericError},
		{"success takes specific", Success, CustomCategorySeparatorError, CustomCategorySeparatorError},
		{"generic upgraded to specific", GenericError, MissingFileTypeRegistrationError, MissingFileTypeRegistrationError},
		{"generic not cleared by success", GenericError, Success, GenericError},
		{"specific sticks over generic", CustomCategoryAccessDeniedError, GenericError, CustomCategoryAccessDeniedError},
		{"specific sticks over later specific", CustomCategorySeparatorError, MissingFileTypeRegistrationError, CustomCategorySeparatorError},
		{"specific not cleared by success", MissingFileTypeRegistrationError, Success, MissingFileTypeRegistrationError},
		{"argument error sticks", ArgumentError, GenericError, ArgumentError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Combine(tc.current, tc.latest); got != tc.want {
				t.Fatalf("Combine(%q, %q) = %q, want %q", tc.current, tc.latest, got, tc.want)
			}
		})
	}
}

func TestCombineFoldOrder(t *testing.T) {
	// Folding a sequence keeps the first specific code no matter what
	// follows it.
	codes := []Code{Success, GenericError, CustomCategorySeparatorError, MissingFileTypeRegistrationError, Success}
	got := Success
	for _, c := range codes {
		got = Combine(got, c)
	}
	if got != CustomCategorySeparatorError {
		t.Fatalf("folded to %q, want %q", got, CustomCategorySeparatorError)
	}
}

func TestOk(t *testing.T) {
	if !Success.Ok() {
		t.Errorf("Success should be ok")
	}
	if GenericError.Ok() {
		t.Errorf("GenericError should not be ok")
	}
}
