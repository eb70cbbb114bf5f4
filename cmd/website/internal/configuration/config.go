package configuration

import "github.com/adampresley/configinator"

type Config struct {
	AwsEndpointUrl        string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"" description:"AWS endpoint URL. Leave empty for AWS itself"`
	AwsRegion             string `flag:"awsregion" env:"AWS_REGION" default:"us-west-2" description:"AWS region"`
	AwsAccessKeyId        string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey    string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket             string `flag:"awsbucket" env:"AWS_BUCKET" default:"" description:"S3 bucket holding original images. When empty, originals are read from OriginalsDir"`
	CdnBaseURL            string `flag:"cdnbase" env:"CDN_BASE_URL" default:"https://res.cloudinary.com" description:"Base URL of the image CDN"`
	CloudName             string `flag:"cloudname" env:"CLOUD_NAME" default:"dntaawevq" description:"CDN cloud name. When empty, every image is served from its original"`
	CookieSecret          string `flag:"cookiesecret" env:"COOKIE_SECRET" default:"password" description:"Secret for encoding cookies"`
	Host                  string `flag:"host" env:"HOST" default:"localhost:8081" description:"The address and port to bind the HTTP server to"`
	LightboxDisplayWidth  int    `flag:"lbwidth" env:"LIGHTBOX_DISPLAY_WIDTH" default:"1600" description:"Width requested from the CDN for the lightbox image"`
	ListingTimeoutSeconds int    `flag:"listingtimeout" env:"LISTING_TIMEOUT_SECONDS" default:"10" description:"Deadline for a single CDN tag listing. 0 disables it"`
	LogLevel              string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxFetchWorkers       int    `flag:"mfw" env:"MAX_FETCH_WORKERS" default:"10" description:"Maximum number of concurrent CDN listing fetches"`
	OriginalsDir          string `flag:"originalsdir" env:"ORIGINALS_DIR" default:"./pics" description:"Local directory of original images, laid out as <tag>/<file>"`
	OriginalsFolder       string `flag:"originalsfolder" env:"ORIGINALS_FOLDER" default:"originals" description:"S3 folder for original images"`
	ThumbnailSize         int    `flag:"thumbsize" env:"THUMBNAIL_SIZE" default:"160" description:"Longest edge of generated lightbox thumbnails"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
