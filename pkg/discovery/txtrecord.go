package discovery

import (
	"fmt"
	"sort"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeServiceTXT creates the TXT records for a timer.
func EncodeServiceTXT(info *ServiceInfo) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyVersion:      info.Version,
		TXTKeyStatusPath:   info.StatusPath,
		TXTKeyIntervalPath: info.IntervalPath,
	}
	if info.State != "" {
		txt[TXTKeyState] = info.State
	}
	return txt
}

// DecodeServiceTXT parses the TXT records of a timer.
func DecodeServiceTXT(txt TXTRecordMap) (*ServiceInfo, error) {
	info := &ServiceInfo{}

	var ok bool
	if info.Version, ok = txt[TXTKeyVersion]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}
	if info.StatusPath, ok = txt[TXTKeyStatusPath]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyStatusPath)
	}
	if info.IntervalPath, ok = txt[TXTKeyIntervalPath]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyIntervalPath)
	}
	info.State = txt[TXTKeyState]

	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidInstanceName)
	}
	if len(name) > MaxInstanceNameLength {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidInstanceName, len(name), MaxInstanceNameLength)
	}
	if strings.ContainsAny(name, ".\x00") {
		return fmt.Errorf("%w: %q contains a dot or NUL", ErrInvalidInstanceName, name)
	}
	return nil
}
