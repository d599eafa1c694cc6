package settings

const clientSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "client settings",
  "type": "object",
  "properties": {
    "autoAcceptDownloads": {"type": "boolean"},
    "autoRestart": {"type": "boolean"},
    "autoRejoin": {"type": "boolean"},
    "defaultDownloadSource": {"type": "string", "enum": ["HOST", "DIRECT_URL", "SERVER", "INTERNET"]},
    "showMismatchPrompts": {"type": "boolean"}
  }
}`

const hostSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "host settings",
  "type": "object",
  "properties": {
    "directDownloadEnabled": {"type": "boolean"},
    "archiveModeEnabled": {"type": "boolean"},
    "archiveURL": {"type": "string"},
    "archiveHash": {"type": "string"},
    "maxTransferSizeMB": {"type": "integer", "minimum": 1}
  }
}`
