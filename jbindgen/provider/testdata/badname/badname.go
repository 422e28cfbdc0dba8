package badname

type Flag int

const (
	//jbind:name 1st
	FlagFirst Flag = iota
	FlagSecond
)
