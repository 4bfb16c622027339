package arsc

// Fuzz implements the go-fuzz harness convention: parse arbitrary
// input, and if it parses, additionally exercise serialization since
// a parse that wrote a model the serializer can't handle is still
// worth surfacing as a fuzz finding.
func Fuzz(data []byte) int {
	table, err := Parse(data)
	if err != nil {
		return 0
	}
	if _, err := table.Serialize(); err != nil {
		panic(err)
	}
	return 1
}
